package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Find returns users matching every non-nil filter.
func (repo *Users) Find(ctx context.Context, username, password *string) ([]models.User, error) {
	query := repo.db.WithContext(ctx).Model(&models.User{})
	if username != nil {
		query = query.Where("username = ?", *username)
	}
	if password != nil {
		query = query.Where("password = ?", *password)
	}

	users := []models.User{}
	if err := query.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) Create(ctx context.Context, user models.User) error {
	existing, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrConflict
	}
	return repo.db.WithContext(ctx).Create(&user).Error
}
