package cli

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/services"
)

type removeJobCommand struct {
	steps
	ctx       context.Context
	jobs      jobCollection
	job       models.Job
	confirmed bool
}

func newRemoveJobCommand(ctx context.Context, out console, jobs jobCollection, job models.Job) *removeJobCommand {
	cmd := &removeJobCommand{ctx: ctx, jobs: jobs, job: job}
	cmd.out = out
	cmd.onComplete = cmd.removeJob

	confirm := newTextInput("Are you sure you want to delete the application to "+
		job.CompanyName+" ("+job.Role+")? (y/n)", func(input string) {
		cmd.confirmed, _ = parseYesNo(input)
	})
	confirm.AddValidation(yesNo())

	cmd.inputHandlers = []inputHandler{confirm}
	return cmd
}

func (c *removeJobCommand) removeJob() {
	removed, err := c.jobs.Remove(c.ctx, c.job.ID, func(models.Job) bool { return c.confirmed })
	if err != nil {
		c.out.Send(services.DescribeError(err))
		return
	}
	if !removed {
		c.out.Send("Deletion cancelled.")
		return
	}
	c.out.Send("Job application deleted.")
}
