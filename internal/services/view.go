package services

import (
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"sort"
	"strings"
)

// AllStatuses is the status filter matching every job.
const AllStatuses = "All"

type SortField string

const (
	SortByDate    SortField = "date"
	SortByCompany SortField = "company"
	SortByRole    SortField = "role"
	SortByStatus  SortField = "status"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

func ParseSortField(s string) (SortField, error) {
	switch field := SortField(strings.ToLower(strings.TrimSpace(s))); field {
	case SortByDate, SortByCompany, SortByRole, SortByStatus:
		return field, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case Ascending, Descending:
		return order, nil
	case "":
		return Ascending, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// ViewQuery selects and orders jobs. Zero value matches everything in insertion order.
type ViewQuery struct {
	Search string
	Status string
	SortBy SortField
	Order  SortOrder
}

// View returns a filtered and sorted copy of the jobs. The collection is not touched.
func (c *JobCollection) View(query ViewQuery) []models.Job {
	return ApplyView(c.Jobs(), query)
}

func ApplyView(jobs []models.Job, query ViewQuery) []models.Job {
	term := strings.ToLower(query.Search)
	result := lo.Filter(jobs, func(job models.Job, _ int) bool {
		return matchesSearch(job, term) && matchesStatus(job, query.Status)
	})

	if query.SortBy == "" {
		return result
	}

	compare := comparator(query.SortBy)
	sign := 1
	if query.Order == Descending {
		sign = -1
	}
	sort.SliceStable(result, func(i, j int) bool {
		return sign*compare(result[i], result[j]) < 0
	})
	return result
}

func matchesSearch(job models.Job, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.CompanyName), term) ||
		strings.Contains(strings.ToLower(job.Role), term)
}

func matchesStatus(job models.Job, status string) bool {
	return status == "" || status == AllStatuses || string(job.Status) == status
}

func comparator(field SortField) func(a, b models.Job) int {
	collator := collate.New(language.English)
	text := func(value func(models.Job) string) func(a, b models.Job) int {
		return func(a, b models.Job) int {
			return collator.CompareString(value(a), value(b))
		}
	}

	switch field {
	case SortByCompany:
		return text(func(j models.Job) string { return j.CompanyName })
	case SortByRole:
		return text(func(j models.Job) string { return j.Role })
	case SortByStatus:
		return text(func(j models.Job) string { return string(j.Status) })
	default:
		return func(a, b models.Job) int {
			return a.AppliedAt().Compare(b.AppliedAt())
		}
	}
}

type Stats struct {
	Total    int
	ByStatus map[models.Status]int
}

func (c *JobCollection) Stats() Stats {
	jobs := c.Jobs()
	stats := Stats{Total: len(jobs), ByStatus: map[models.Status]int{}}
	for _, status := range models.Statuses {
		stats.ByStatus[status] = lo.CountBy(jobs, func(j models.Job) bool { return j.Status == status })
	}
	return stats
}
