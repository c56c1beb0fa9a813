package db

import (
	"github.com/haulmatch/loadboard/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TruckRepository interface
type TruckRepository interface {
	CreateTruck(truck *models.Truck) error
	FindTruckByID(id uint) (*models.Truck, error)
	UpdateTruck(truck *models.Truck) error
	DeleteTruck(id uint) error
	GetAvailableTrucks() ([]models.Truck, error)
	GetTrucksByDriver(driverID uint) ([]models.Truck, error)
}

type truckRepo struct {
	DB *gorm.DB
}

func NewTruckRepo(db *GormDB) TruckRepository {
	return &truckRepo{db.DB}
}

func (r *truckRepo) CreateTruck(truck *models.Truck) error {
	if err := r.DB.Create(truck).Error; err != nil {
		return errors.Wrap(err, "could not create truck")
	}
	return nil
}

func (r *truckRepo) FindTruckByID(id uint) (*models.Truck, error) {
	var truck models.Truck
	if err := r.DB.First(&truck, id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepo) UpdateTruck(truck *models.Truck) error {
	return r.DB.Save(truck).Error
}

func (r *truckRepo) DeleteTruck(id uint) error {
	result := r.DB.Delete(&models.Truck{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *truckRepo) GetAvailableTrucks() ([]models.Truck, error) {
	trucks := make([]models.Truck, 0)
	if err := r.DB.Where("available = ?", true).Order("created_at desc").Find(&trucks).Error; err != nil {
		return nil, errors.Wrap(err, "could not list trucks")
	}
	return trucks, nil
}

func (r *truckRepo) GetTrucksByDriver(driverID uint) ([]models.Truck, error) {
	trucks := make([]models.Truck, 0)
	if err := r.DB.Where("driver_id = ?", driverID).Order("created_at desc").Find(&trucks).Error; err != nil {
		return nil, errors.Wrap(err, "could not list driver trucks")
	}
	return trucks, nil
}
