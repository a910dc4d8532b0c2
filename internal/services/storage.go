package services

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
)

type jobStorage interface {
	ListJobs(ctx context.Context, userID string) ([]models.Job, error)
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
	UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

type userStorage interface {
	FindUser(ctx context.Context, username, password string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// Storage is the persistence contract shared by the local store and the REST client.
type Storage interface {
	jobStorage
	userStorage
	GetJob(ctx context.Context, id string) (*models.Job, error)
}
