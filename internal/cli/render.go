package cli

import (
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/services"
	"strings"
	"time"
)

const (
	descriptionPreviewLength  = 150
	requirementsPreviewLength = 100
)

// relativeDate renders dateApplied the way the dashboard does: recent dates as
// "N days ago", older or future ones as a calendar date.
func relativeDate(job models.Job, now time.Time) string {
	applied := job.AppliedAt()
	if applied.IsZero() {
		return job.DateApplied
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(applied.Year(), applied.Month(), applied.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return applied.Format("Jan 2, 2006")
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func jobCard(number int, job models.Job, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s - %s [%s]\n", number, job.CompanyName, job.Role, job.Status)
	fmt.Fprintf(&b, "   Applied: %s", relativeDate(job, now))
	if job.Description != "" {
		fmt.Fprintf(&b, "\n   Description: %s", truncate(job.Description, descriptionPreviewLength))
	}
	if job.Requirements != "" {
		fmt.Fprintf(&b, "\n   Requirements: %s", truncate(job.Requirements, requirementsPreviewLength))
	}
	return b.String()
}

func jobDetails(job models.Job, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", job.CompanyName, job.Role)
	fmt.Fprintf(&b, "Status: %s\n", job.Status)
	fmt.Fprintf(&b, "Applied: %s (%s)", job.DateApplied, relativeDate(job, now))

	for _, field := range []struct{ label, value string }{
		{"Description", job.Description},
		{"Requirements", job.Requirements},
		{"Duties", job.Duties},
		{"Contact details", job.ContactDetails},
		{"Address", job.Address},
		{"Notes", job.Notes},
	} {
		if field.value != "" {
			fmt.Fprintf(&b, "\n%s: %s", field.label, field.value)
		}
	}
	return b.String()
}

func statsLine(stats services.Stats) string {
	parts := []string{fmt.Sprintf("Total: %d", stats.Total)}
	for _, status := range models.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", status, stats.ByStatus[status]))
	}
	return strings.Join(parts, "  ")
}

func describeQuery(query services.ViewQuery) string {
	var parts []string
	if query.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", query.Search))
	}
	if query.Status != "" && query.Status != services.AllStatuses {
		parts = append(parts, "status "+query.Status)
	}
	if query.SortBy != "" {
		parts = append(parts, fmt.Sprintf("sorted by %s %s", query.SortBy, query.Order))
	}
	return strings.Join(parts, ", ")
}

const helpText = `Commands:
  register                     create an account
  login                        sign in
  logout                       sign out
  list                         show your job applications
  add                          add a job application
  show <n>                     show application number n
  edit <n>                     edit application number n
  status <n>                   move application n to the next status
  delete <n>                   delete application number n
  search [text]                filter by company or role, no text clears
  filter <status|All>          filter by status
  sort <date|company|role|status> [asc|desc]
  sort                         back to insertion order
  stats                        count applications per status
  reload                       reload applications from storage
  open <path>                  open a page: /, /login, /register, /home, /job/<id>
  back                         cancel the current command
  help                         show this help
  quit                         exit`
