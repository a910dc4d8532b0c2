package cli

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/services"
	"strings"
)

type jobCollection interface {
	Add(ctx context.Context, form models.JobForm) (models.Job, error)
	Update(ctx context.Context, id string, patch models.JobPatch) (models.Job, error)
	Remove(ctx context.Context, id string, confirm func(models.Job) bool) (bool, error)
}

type addJobCommand struct {
	steps
	ctx  context.Context
	jobs jobCollection
	form models.JobForm
}

func newAddJobCommand(ctx context.Context, out console, jobs jobCollection) *addJobCommand {
	cmd := &addJobCommand{ctx: ctx, jobs: jobs}
	cmd.out = out
	cmd.onComplete = cmd.addJob

	company := newTextInput("Company name:", func(input string) { cmd.form.CompanyName = input })
	company.AddValidation(required("Company name is required"))

	role := newTextInput("Role:", func(input string) { cmd.form.Role = input })
	role.AddValidation(required("Role is required"))

	status := newTextInput("Status (Applied, Pending, Rejected, Interviewed) [Applied]:", func(input string) {
		if parsed, err := models.ParseStatusFold(input); err == nil {
			cmd.form.Status = string(parsed)
		}
	})
	status.AddValidation(optionalStatus())

	date := newTextInput("Date applied (YYYY-MM-DD) [today]:", func(input string) {
		cmd.form.DateApplied = strings.TrimSpace(input)
	})
	date.AddValidation(optionalDate())

	cmd.inputHandlers = []inputHandler{company, role, status, date,
		newTextInput("Job description (optional):", func(input string) { cmd.form.Description = input }),
		newTextInput("Requirements (optional):", func(input string) { cmd.form.Requirements = input }),
		newTextInput("Duties (optional):", func(input string) { cmd.form.Duties = input }),
		newTextInput("Contact details (optional):", func(input string) { cmd.form.ContactDetails = input }),
		newTextInput("Address (optional):", func(input string) { cmd.form.Address = input }),
		newTextInput("Notes (optional):", func(input string) { cmd.form.Notes = input }),
	}
	return cmd
}

func (c *addJobCommand) addJob() {
	job, err := c.jobs.Add(c.ctx, c.form)
	if err != nil {
		c.out.Send(services.DescribeError(err))
		return
	}
	c.out.Sendf("Job application added: %s - %s", job.CompanyName, job.Role)
}
