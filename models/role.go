package models

import "github.com/google/uuid"

// Role determines what a user is allowed to post: shippers post loads,
// drivers post trucks and apply, admins approve accounts.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleShipper = "Shipper"
	RoleDriver  = "Driver"
	RoleAdmin   = "Admin"
)
