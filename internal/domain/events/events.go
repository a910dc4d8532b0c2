package events

import "github.com/maxaizer/job-tracker/internal/domain/models"

var SessionStartedTopic = "SessionStartedEvent"

type SessionStarted struct {
	User models.User
}

var SessionEndedTopic = "SessionEndedEvent"

type SessionEnded struct {
	UserID string
}

var JobsChangedTopic = "JobsChangedEvent"

type JobsChanged struct {
	UserID string
	JobID  string
	Action string
}

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)
