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

// ApplicationService interface
type ApplicationService interface {
	Apply(driver *models.User, loadID uint, request *models.ApplyRequest) (*models.Application, *apiError.Error)
	GetApplicationsForLoad(caller *models.User, loadID uint) ([]models.Application, *apiError.Error)
	GetMyApplications(driverID uint) ([]models.Application, *apiError.Error)
	Accept(caller *models.User, applicationID uint) (*models.Application, *apiError.Error)
	Reject(caller *models.User, applicationID uint) (*models.Application, *apiError.Error)
}

type applicationService struct {
	Config  *config.Config
	appRepo db.ApplicationRepository
	loadRepo db.LoadRepository
	mail    Mailer
}

// Mailer sends transactional notifications; a nil implementation is a
// no-op so the service works without mail configured.
type Mailer interface {
	SendApplicationDecision(toEmail, driverName, origin, destination, status string) error
}

// NewApplicationService instantiate an applicationService
func NewApplicationService(appRepo db.ApplicationRepository, loadRepo db.LoadRepository, mail Mailer, conf *config.Config) ApplicationService {
	return &applicationService{
		Config:   conf,
		appRepo:  appRepo,
		loadRepo: loadRepo,
		mail:     mail,
	}
}

func (s *applicationService) Apply(driver *models.User, loadID uint, request *models.ApplyRequest) (*models.Application, *apiError.Error) {
	if driver.Role.Name != models.RoleDriver {
		return nil, apiError.AuthorizationError("only drivers can apply to loads")
	}
	if !driver.Approved {
		return nil, apiError.AuthorizationError("account pending approval")
	}

	load, err := s.loadRepo.FindLoadByID(loadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("load not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	if load.Status != models.LoadStatusOpen {
		return nil, apiError.ValidationError("load is no longer open")
	}

	applied, err := s.appRepo.HasApplied(loadID, driver.ID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	if applied {
		return nil, apiError.ValidationError("already applied to this load")
	}

	app := &models.Application{
		LoadID:   loadID,
		DriverID: driver.ID,
		Note:     request.Note,
		Status:   models.ApplicationStatusPending,
	}
	if err := s.appRepo.CreateApplication(app); err != nil {
		log.Printf("Apply error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return app, nil
}

func (s *applicationService) GetApplicationsForLoad(caller *models.User, loadID uint) ([]models.Application, *apiError.Error) {
	load, err := s.loadRepo.FindLoadByID(loadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("load not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	if load.ShipperID != caller.ID {
		return nil, apiError.AuthorizationError("not the owner of this load")
	}

	apps, err := s.appRepo.GetApplicationsByLoad(loadID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return apps, nil
}

func (s *applicationService) GetMyApplications(driverID uint) ([]models.Application, *apiError.Error) {
	apps, err := s.appRepo.GetApplicationsByDriver(driverID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return apps, nil
}

func (s *applicationService) decide(caller *models.User, applicationID uint) (*models.Application, *apiError.Error) {
	app, err := s.appRepo.FindApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("application not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	if app.Load.ShipperID != caller.ID {
		return nil, apiError.AuthorizationError("not the owner of this load")
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, apiError.ValidationError("application already decided")
	}
	return app, nil
}

// Accept marks the application accepted, assigns the load and rejects
// competing applications in one transaction.
func (s *applicationService) Accept(caller *models.User, applicationID uint) (*models.Application, *apiError.Error) {
	app, apiErr := s.decide(caller, applicationID)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.appRepo.AcceptApplication(app); err != nil {
		log.Printf("Accept error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	app.Status = models.ApplicationStatusAccepted

	s.notify(app)
	return app, nil
}

func (s *applicationService) Reject(caller *models.User, applicationID uint) (*models.Application, *apiError.Error) {
	app, apiErr := s.decide(caller, applicationID)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.appRepo.RejectApplication(app); err != nil {
		log.Printf("Reject error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	app.Status = models.ApplicationStatusRejected

	s.notify(app)
	return app, nil
}

func (s *applicationService) notify(app *models.Application) {
	if s.mail == nil {
		return
	}
	err := s.mail.SendApplicationDecision(app.Driver.Email, app.Driver.Fullname,
		app.Load.Origin, app.Load.Destination, app.Status)
	if err != nil {
		log.Printf("could not send application decision mail: %v", err)
	}
}
