package cli

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/services"
	"strings"
)

// clearValue empties an optional field while editing.
const clearValue = "-"

type editJobCommand struct {
	steps
	ctx   context.Context
	jobs  jobCollection
	job   models.Job
	patch models.JobPatch
}

func newEditJobCommand(ctx context.Context, out console, jobs jobCollection, job models.Job) *editJobCommand {
	cmd := &editJobCommand{ctx: ctx, jobs: jobs, job: job}
	cmd.out = out
	cmd.onComplete = cmd.editJob

	status := cmd.field("Status", string(job.Status), true, func(value string) {
		if parsed, err := models.ParseStatusFold(value); err == nil && parsed != job.Status {
			cmd.patch.Status = &parsed
		}
	})
	status.AddValidation(optionalStatus())

	date := cmd.field("Date applied", job.DateApplied, true, func(value string) {
		cmd.patch.DateApplied = &value
	})
	date.AddValidation(optionalDate())

	cmd.inputHandlers = []inputHandler{
		cmd.field("Company name", job.CompanyName, true, func(value string) { cmd.patch.CompanyName = &value }),
		cmd.field("Role", job.Role, true, func(value string) { cmd.patch.Role = &value }),
		status,
		date,
		cmd.field("Job description", job.Description, false, func(value string) { cmd.patch.Description = &value }),
		cmd.field("Requirements", job.Requirements, false, func(value string) { cmd.patch.Requirements = &value }),
		cmd.field("Duties", job.Duties, false, func(value string) { cmd.patch.Duties = &value }),
		cmd.field("Contact details", job.ContactDetails, false, func(value string) { cmd.patch.ContactDetails = &value }),
		cmd.field("Address", job.Address, false, func(value string) { cmd.patch.Address = &value }),
		cmd.field("Notes", job.Notes, false, func(value string) { cmd.patch.Notes = &value }),
	}
	return cmd
}

// field calls set only when the entered value differs from current. Blank input keeps
// the current value, clearValue empties an optional field.
func (c *editJobCommand) field(label, current string, mandatory bool, set func(value string)) *textInput {
	prompt := fmt.Sprintf("%s [%s]:", label, current)
	if !mandatory {
		prompt = fmt.Sprintf("%s [%s] (%q clears):", label, current, clearValue)
	}

	input := newTextInput(prompt, func(input string) {
		value := strings.TrimSpace(input)
		switch {
		case value == "":
			return
		case value == clearValue && !mandatory:
			value = ""
		}
		if value != current {
			set(value)
		}
	})
	return input
}

func (c *editJobCommand) editJob() {
	if c.patch.IsEmpty() {
		c.out.Send("Nothing changed.")
		return
	}

	job, err := c.jobs.Update(c.ctx, c.job.ID, c.patch)
	if err != nil {
		c.out.Send(services.DescribeError(err))
		return
	}
	c.out.Sendf("Job application updated: %s - %s", job.CompanyName, job.Role)
}
