package models

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is a driver's bid on a load. One application per driver
// per load; accepting one rejects its siblings and assigns the load.
type Application struct {
	Model
	LoadID   uint   `json:"load_id" gorm:"not null;index;uniqueIndex:idx_load_driver"`
	Load     Load   `gorm:"foreignKey:LoadID" json:"-"`
	DriverID uint   `json:"driver_id" gorm:"not null;index;uniqueIndex:idx_load_driver"`
	Driver   User   `gorm:"foreignKey:DriverID" json:"-"`
	Note     string `json:"note"`
	Status   string `json:"status" gorm:"default:pending"`
}

type ApplyRequest struct {
	Note string `json:"note" conform:"trim"`
}

type ApplicationResponse struct {
	Application
	DriverName string `json:"driver_name,omitempty"`
}
