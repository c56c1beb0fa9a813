package services

import (
	"errors"
	"log"

	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	apiError "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"gorm.io/gorm"
)

// TruckService interface
type TruckService interface {
	CreateTruck(driver *models.User, request *models.CreateTruckRequest) (*models.Truck, *apiError.Error)
	GetAvailableTrucks() ([]models.Truck, *apiError.Error)
	GetMyTrucks(driverID uint) ([]models.Truck, *apiError.Error)
	UpdateTruck(caller *models.User, id uint, request *models.UpdateTruckRequest) (*models.Truck, *apiError.Error)
	DeleteTruck(caller *models.User, id uint) *apiError.Error
}

type truckService struct {
	Config    *config.Config
	truckRepo db.TruckRepository
}

// NewTruckService instantiate a truckService
func NewTruckService(truckRepo db.TruckRepository, conf *config.Config) TruckService {
	return &truckService{
		Config:    conf,
		truckRepo: truckRepo,
	}
}

func (s *truckService) CreateTruck(driver *models.User, request *models.CreateTruckRequest) (*models.Truck, *apiError.Error) {
	if driver.Role.Name != models.RoleDriver {
		return nil, apiError.AuthorizationError("only drivers can post trucks")
	}
	if !driver.Approved {
		return nil, apiError.AuthorizationError("account pending approval")
	}
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	truck := &models.Truck{
		DriverID:     driver.ID,
		Equipment:    request.Equipment,
		CapacityLbs:  request.CapacityLbs,
		HomeBase:     request.HomeBase,
		LicensePlate: request.LicensePlate,
		Available:    true,
	}
	if err := s.truckRepo.CreateTruck(truck); err != nil {
		log.Printf("CreateTruck error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return truck, nil
}

func (s *truckService) GetAvailableTrucks() ([]models.Truck, *apiError.Error) {
	trucks, err := s.truckRepo.GetAvailableTrucks()
	if err != nil {
		log.Printf("GetAvailableTrucks error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return trucks, nil
}

func (s *truckService) GetMyTrucks(driverID uint) ([]models.Truck, *apiError.Error) {
	trucks, err := s.truckRepo.GetTrucksByDriver(driverID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return trucks, nil
}

func (s *truckService) UpdateTruck(caller *models.User, id uint, request *models.UpdateTruckRequest) (*models.Truck, *apiError.Error) {
	truck, err := s.truckRepo.FindTruckByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("truck not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	if truck.DriverID != caller.ID {
		return nil, apiError.AuthorizationError("not the owner of this truck")
	}
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	if request.Equipment != "" {
		truck.Equipment = request.Equipment
	}
	if request.CapacityLbs > 0 {
		truck.CapacityLbs = request.CapacityLbs
	}
	if request.HomeBase != "" {
		truck.HomeBase = request.HomeBase
	}
	if request.Available != nil {
		truck.Available = *request.Available
	}

	if err := s.truckRepo.UpdateTruck(truck); err != nil {
		log.Printf("UpdateTruck error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return truck, nil
}

func (s *truckService) DeleteTruck(caller *models.User, id uint) *apiError.Error {
	truck, err := s.truckRepo.FindTruckByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.NotFoundError("truck not found")
		}
		return apiError.ErrInternalServerError
	}
	if truck.DriverID != caller.ID {
		return apiError.AuthorizationError("not the owner of this truck")
	}
	if err := s.truckRepo.DeleteTruck(id); err != nil {
		log.Printf("DeleteTruck error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
