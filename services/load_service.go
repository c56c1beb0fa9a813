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

// LoadService interface
type LoadService interface {
	CreateLoad(shipper *models.User, request *models.CreateLoadRequest) (*models.Load, *apiError.Error)
	GetLoad(id uint) (*models.Load, *apiError.Error)
	SearchLoads(filter models.LoadFilter) ([]models.Load, *apiError.Error)
	GetMyLoads(shipperID uint) ([]models.Load, *apiError.Error)
	UpdateLoad(caller *models.User, id uint, request *models.UpdateLoadRequest) (*models.Load, *apiError.Error)
	DeleteLoad(caller *models.User, id uint) *apiError.Error
}

type loadService struct {
	Config   *config.Config
	loadRepo db.LoadRepository
}

// NewLoadService instantiate a loadService
func NewLoadService(loadRepo db.LoadRepository, conf *config.Config) LoadService {
	return &loadService{
		Config:   conf,
		loadRepo: loadRepo,
	}
}

func (s *loadService) CreateLoad(shipper *models.User, request *models.CreateLoadRequest) (*models.Load, *apiError.Error) {
	if shipper.Role.Name != models.RoleShipper {
		return nil, apiError.AuthorizationError("only shippers can post loads")
	}
	if !shipper.Approved {
		return nil, apiError.AuthorizationError("account pending approval")
	}
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	load := &models.Load{
		ShipperID:   shipper.ID,
		Origin:      request.Origin,
		Destination: request.Destination,
		PickupDate:  request.PickupDate,
		WeightLbs:   request.WeightLbs,
		Rate:        request.Rate,
		Equipment:   request.Equipment,
		Description: request.Description,
		Status:      models.LoadStatusOpen,
	}
	if err := s.loadRepo.CreateLoad(load); err != nil {
		log.Printf("CreateLoad error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return load, nil
}

func (s *loadService) GetLoad(id uint) (*models.Load, *apiError.Error) {
	load, err := s.loadRepo.FindLoadByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("load not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	return load, nil
}

// SearchLoads is open to everyone; approval never gates reads.
func (s *loadService) SearchLoads(filter models.LoadFilter) ([]models.Load, *apiError.Error) {
	loads, err := s.loadRepo.SearchLoads(filter)
	if err != nil {
		log.Printf("SearchLoads error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return loads, nil
}

func (s *loadService) GetMyLoads(shipperID uint) ([]models.Load, *apiError.Error) {
	loads, err := s.loadRepo.GetLoadsByShipper(shipperID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return loads, nil
}

func (s *loadService) UpdateLoad(caller *models.User, id uint, request *models.UpdateLoadRequest) (*models.Load, *apiError.Error) {
	load, apiErr := s.GetLoad(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if load.ShipperID != caller.ID {
		return nil, apiError.AuthorizationError("not the owner of this load")
	}
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	if request.Origin != "" {
		load.Origin = request.Origin
	}
	if request.Destination != "" {
		load.Destination = request.Destination
	}
	if request.PickupDate != nil {
		load.PickupDate = *request.PickupDate
	}
	if request.WeightLbs > 0 {
		load.WeightLbs = request.WeightLbs
	}
	if request.Rate > 0 {
		load.Rate = request.Rate
	}
	if request.Equipment != "" {
		load.Equipment = request.Equipment
	}
	if request.Description != "" {
		load.Description = request.Description
	}
	if request.Status != "" {
		switch request.Status {
		case models.LoadStatusOpen, models.LoadStatusAssigned, models.LoadStatusDelivered:
			load.Status = request.Status
		default:
			return nil, apiError.ValidationError("invalid load status")
		}
	}

	if err := s.loadRepo.UpdateLoad(load); err != nil {
		log.Printf("UpdateLoad error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return load, nil
}

func (s *loadService) DeleteLoad(caller *models.User, id uint) *apiError.Error {
	load, apiErr := s.GetLoad(id)
	if apiErr != nil {
		return apiErr
	}
	if load.ShipperID != caller.ID {
		return apiError.AuthorizationError("not the owner of this load")
	}
	if err := s.loadRepo.DeleteLoad(id); err != nil {
		log.Printf("DeleteLoad error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
