package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Find returns all jobs, or only the ones owned by userID when it is set.
func (repo *Jobs) Find(ctx context.Context, userID *string) ([]models.Job, error) {
	query := repo.db.WithContext(ctx).Model(&models.Job{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	jobs := []models.Job{}
	if err := query.Order("id").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) Create(ctx context.Context, job models.Job) error {
	existing, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrConflict
	}
	return repo.db.WithContext(ctx).Create(&job).Error
}

// Update applies the set fields of patch and returns the stored record, nil when id is unknown.
func (repo *Jobs) Update(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	if columns := patch.Columns(); len(columns) > 0 {
		res := repo.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return repo.GetByID(ctx, id)
}

func (repo *Jobs) Delete(ctx context.Context, id string) (bool, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
