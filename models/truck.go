package models

// Truck is equipment listed by a driver so shippers can find capacity.
type Truck struct {
	Model
	DriverID     uint   `json:"driver_id" gorm:"not null;index"`
	Driver       User   `gorm:"foreignKey:DriverID" json:"-"`
	Equipment    string `json:"equipment" gorm:"not null"`
	CapacityLbs  int    `json:"capacity_lbs"`
	HomeBase     string `json:"home_base"`
	LicensePlate string `json:"license_plate"`
	Available    bool   `json:"available" gorm:"default:true"`
}

type CreateTruckRequest struct {
	Equipment    string `json:"equipment" binding:"required" conform:"trim"`
	CapacityLbs  int    `json:"capacity_lbs" binding:"required,gt=0"`
	HomeBase     string `json:"home_base" conform:"trim"`
	LicensePlate string `json:"license_plate" conform:"trim,upper"`
}

type UpdateTruckRequest struct {
	Equipment   string `json:"equipment" conform:"trim"`
	CapacityLbs int    `json:"capacity_lbs"`
	HomeBase    string `json:"home_base" conform:"trim"`
	Available   *bool  `json:"available"`
}
