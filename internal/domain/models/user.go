package models

import (
	"strconv"
	"time"
)

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"index"`
	Password string `json:"password"`
}

func (u User) IsValid() bool {
	return u.ID != "" && u.Username != ""
}

// NewID returns a millisecond timestamp id, bumped forward while taken reports a collision.
func NewID(now time.Time, taken func(id string) bool) string {
	ms := now.UnixMilli()
	id := strconv.FormatInt(ms, 10)
	for taken != nil && taken(id) {
		ms++
		id = strconv.FormatInt(ms, 10)
	}
	return id
}
