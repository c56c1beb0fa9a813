package models

import (
	"time"
)

// Model is the base for all persisted entities. IDs are
// auto-incrementing integers assigned by the store.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
