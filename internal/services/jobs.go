package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/events"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// JobCollection is the in-memory list of one user's jobs kept in step with storage.
// The lock is never held while storage is called, so racing mutations on the same
// job settle in the order their responses arrive.
type JobCollection struct {
	storage jobStorage
	bus     EventBus.Bus
	userID  string
	now     func() time.Time

	mu       sync.RWMutex
	jobs     []models.Job
	state    LoadState
	errorMsg string
}

func NewJobCollection(storage jobStorage, bus EventBus.Bus, userID string) *JobCollection {
	return &JobCollection{
		storage: storage,
		bus:     bus,
		userID:  userID,
		now:     time.Now,
		jobs:    []models.Job{},
		state:   StateIdle,
	}
}

func (c *JobCollection) SetClock(now func() time.Time) {
	c.now = now
}

func (c *JobCollection) UserID() string {
	return c.userID
}

// Load replaces the list with the stored jobs. On failure the previous list is kept.
func (c *JobCollection) Load(ctx context.Context) error {
	c.setState(StateLoading, "")

	jobs, err := c.storage.ListJobs(ctx, c.userID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to load jobs of user %q: %v", c.userID, err)
		c.setState(StateError, DescribeError(err))
		return err
	}

	c.mu.Lock()
	c.jobs = append([]models.Job{}, jobs...)
	c.state, c.errorMsg = StateReady, ""
	c.mu.Unlock()

	log.Debugf("loaded %d jobs of user %q", len(jobs), c.userID)
	return nil
}

// Add validates the form, stores the job and appends the stored record.
// Validation failures are returned as models.FieldErrors.
func (c *JobCollection) Add(ctx context.Context, form models.JobForm) (models.Job, error) {
	job, err := form.Validate(c.now())
	if err != nil {
		return models.Job{}, err
	}
	job.UserID = c.userID

	created, err := c.storage.CreateJob(ctx, job)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to create job: %v", err)
		return models.Job{}, err
	}

	c.mu.Lock()
	c.jobs = append(c.jobs, created)
	c.mu.Unlock()

	c.publish(created.ID, events.ActionAdded)
	return created, nil
}

func (c *JobCollection) Update(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	if _, found := c.Get(id); !found {
		return models.Job{}, ErrJobNotFound
	}
	if err := patch.Validate(); err != nil {
		return models.Job{}, err
	}

	updated, err := c.storage.UpdateJob(ctx, id, patch)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to update job %s: %v", id, err)
		return models.Job{}, err
	}

	c.mu.Lock()
	if _, index, found := lo.FindIndexOf(c.jobs, func(j models.Job) bool { return j.ID == id }); found {
		c.jobs[index] = updated
	}
	c.mu.Unlock()

	c.publish(id, events.ActionUpdated)
	return updated, nil
}

// CycleStatus moves the job to the next status of the Applied, Pending, Rejected cycle.
func (c *JobCollection) CycleStatus(ctx context.Context, id string) (models.Job, error) {
	job, found := c.Get(id)
	if !found {
		return models.Job{}, ErrJobNotFound
	}
	return c.Update(ctx, id, models.StatusPatch(job.Status.Next()))
}

// Remove deletes the job only when confirm approves it. The result reports
// whether the job was deleted.
func (c *JobCollection) Remove(ctx context.Context, id string, confirm func(models.Job) bool) (bool, error) {
	job, found := c.Get(id)
	if !found {
		return false, ErrJobNotFound
	}
	if confirm == nil || !confirm(job) {
		return false, nil
	}

	if err := c.storage.DeleteJob(ctx, id); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to delete job %s: %v", id, err)
		return false, err
	}

	c.mu.Lock()
	c.jobs = lo.Reject(c.jobs, func(j models.Job, _ int) bool { return j.ID == id })
	c.mu.Unlock()

	c.publish(id, events.ActionRemoved)
	return true, nil
}

// Jobs returns a copy of the list in insertion order.
func (c *JobCollection) Jobs() []models.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Job{}, c.jobs...)
}

func (c *JobCollection) Get(id string) (models.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.jobs, func(j models.Job) bool { return j.ID == id })
}

// State returns the load state and, in StateError, the message of the failure.
func (c *JobCollection) State() (LoadState, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.errorMsg
}

func (c *JobCollection) setState(state LoadState, message string) {
	c.mu.Lock()
	c.state, c.errorMsg = state, message
	c.mu.Unlock()
}

func (c *JobCollection) publish(jobID, action string) {
	if c.bus != nil {
		c.bus.Publish(events.JobsChangedTopic, events.JobsChanged{UserID: c.userID, JobID: jobID, Action: action})
	}
}
