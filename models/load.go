package models

import "time"

const (
	LoadStatusOpen      = "open"
	LoadStatusAssigned  = "assigned"
	LoadStatusDelivered = "delivered"
)

// Load is a shipment posted by a shipper. It stays open until an
// application is accepted, which assigns it to that driver.
type Load struct {
	Model
	ShipperID   uint      `json:"shipper_id" gorm:"not null;index"`
	Shipper     User      `gorm:"foreignKey:ShipperID" json:"-"`
	Origin      string    `json:"origin" gorm:"not null"`
	Destination string    `json:"destination" gorm:"not null"`
	PickupDate  time.Time `json:"pickup_date"`
	WeightLbs   int       `json:"weight_lbs"`
	Rate        float64   `json:"rate"`
	Equipment   string    `json:"equipment"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"default:open"`
}

type CreateLoadRequest struct {
	Origin      string    `json:"origin" binding:"required" conform:"trim"`
	Destination string    `json:"destination" binding:"required" conform:"trim"`
	PickupDate  time.Time `json:"pickup_date" binding:"required"`
	WeightLbs   int       `json:"weight_lbs" binding:"required,gt=0"`
	Rate        float64   `json:"rate" binding:"required,gt=0"`
	Equipment   string    `json:"equipment" conform:"trim"`
	Description string    `json:"description"`
}

type UpdateLoadRequest struct {
	Origin      string     `json:"origin" conform:"trim"`
	Destination string     `json:"destination" conform:"trim"`
	PickupDate  *time.Time `json:"pickup_date"`
	WeightLbs   int        `json:"weight_lbs"`
	Rate        float64    `json:"rate"`
	Equipment   string     `json:"equipment" conform:"trim"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

// LoadFilter narrows the public load search. Zero values match all.
type LoadFilter struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	Equipment   string `form:"equipment"`
	Status      string `form:"status"`
}
