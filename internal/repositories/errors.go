package repositories

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record with this id already exists")
)
