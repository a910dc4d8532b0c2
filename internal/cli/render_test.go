package cli

import (
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"time"
)

func Test_RelativeDate(t *testing.T) {
	now := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	tests := map[string]string{
		"2024-05-10": "Today",
		"2024-05-09": "1 day ago",
		"2024-05-04": "6 days ago",
		"2024-05-03": "May 3, 2024",
		"2024-06-01": "Jun 1, 2024",
		"not a date": "not a date",
	}

	for date, expected := range tests {
		assert.Equal(t, expected, relativeDate(models.Job{DateApplied: date}, now), date)
	}
}

func Test_JobCard_ShouldTruncateLongTexts(t *testing.T) {
	job := models.Job{
		CompanyName:  "Acme",
		Role:         "Dev",
		Status:       models.Pending,
		DateApplied:  "2024-05-01",
		Description:  strings.Repeat("d", 200),
		Requirements: strings.Repeat("r", 100),
	}

	card := jobCard(2, job, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, card, "2. Acme - Dev [Pending]")
	assert.Contains(t, card, "Description: "+strings.Repeat("d", 150)+"...")
	assert.True(t, strings.HasSuffix(card, "Requirements: "+strings.Repeat("r", 100)))
}
