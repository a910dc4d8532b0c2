package repositories

import (
	"context"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storedValue struct {
	Name  string `gorm:"primaryKey"`
	Value []byte
}

func (storedValue) TableName() string {
	return "stored_values"
}

// Data is a durable key/value store, the local counterpart of browser storage.
type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, key string, data []byte) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&storedValue{Name: key, Value: data}).Error
}

// Load returns nil without error when nothing is stored under key.
func (repo *Data) Load(ctx context.Context, key string) ([]byte, error) {
	value := &storedValue{}
	err := repo.db.WithContext(ctx).First(value, "name = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return value.Value, nil
}

func (repo *Data) Remove(ctx context.Context, key string) error {
	return repo.db.WithContext(ctx).Delete(&storedValue{}, "name = ?", key).Error
}
