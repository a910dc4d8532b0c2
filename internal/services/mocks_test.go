package services

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockJobStorage struct {
	mock.Mock
}

func (m *mockJobStorage) ListJobs(ctx context.Context, userID string) ([]models.Job, error) {
	args := m.Called(ctx, userID)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *mockJobStorage) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(models.Job), args.Error(1)
}

func (m *mockJobStorage) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.Job), args.Error(1)
}

func (m *mockJobStorage) DeleteJob(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
