package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"path/filepath"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(path string) (*DbContext, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

// MigrateStorage creates the key/value table used by the local storage strategy.
func (c *DbContext) MigrateStorage() error {
	if err := c.DB.AutoMigrate(&storedValue{}); err != nil {
		return fmt.Errorf("failed to migrate storedValue entity: %w", err)
	}
	return nil
}

// MigrateServer creates the tables served by the REST API.
func (c *DbContext) MigrateServer() error {
	err := c.DB.AutoMigrate(&models.User{})
	if err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}

	err = c.DB.AutoMigrate(&models.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
