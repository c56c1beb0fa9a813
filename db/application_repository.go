package db

import (
	"github.com/haulmatch/loadboard/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ApplicationRepository interface
type ApplicationRepository interface {
	CreateApplication(app *models.Application) error
	FindApplicationByID(id uint) (*models.Application, error)
	HasApplied(loadID, driverID uint) (bool, error)
	GetApplicationsByLoad(loadID uint) ([]models.Application, error)
	GetApplicationsByDriver(driverID uint) ([]models.Application, error)
	AcceptApplication(app *models.Application) error
	RejectApplication(app *models.Application) error
}

type applicationRepo struct {
	DB *gorm.DB
}

func NewApplicationRepo(db *GormDB) ApplicationRepository {
	return &applicationRepo{db.DB}
}

func (r *applicationRepo) CreateApplication(app *models.Application) error {
	if err := r.DB.Create(app).Error; err != nil {
		return errors.Wrap(err, "could not create application")
	}
	return nil
}

func (r *applicationRepo) FindApplicationByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.DB.Preload("Load").Preload("Driver").First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) HasApplied(loadID, driverID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Application{}).
		Where("load_id = ? AND driver_id = ?", loadID, driverID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check application")
	}
	return count > 0, nil
}

func (r *applicationRepo) GetApplicationsByLoad(loadID uint) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	if err := r.DB.Preload("Driver").Where("load_id = ?", loadID).Order("created_at").Find(&apps).Error; err != nil {
		return nil, errors.Wrap(err, "could not list load applications")
	}
	return apps, nil
}

func (r *applicationRepo) GetApplicationsByDriver(driverID uint) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	if err := r.DB.Preload("Load").Where("driver_id = ?", driverID).Order("created_at desc").Find(&apps).Error; err != nil {
		return nil, errors.Wrap(err, "could not list driver applications")
	}
	return apps, nil
}

// AcceptApplication marks the application accepted, rejects the other
// pending applications on the same load and assigns the load, all in
// one transaction so a crash can't leave a half-decided load.
func (r *applicationRepo) AcceptApplication(app *models.Application) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Update("status", models.ApplicationStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Application{}).
			Where("load_id = ? AND id <> ? AND status = ?", app.LoadID, app.ID, models.ApplicationStatusPending).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}
		return tx.Model(&models.Load{}).
			Where("id = ?", app.LoadID).
			Update("status", models.LoadStatusAssigned).Error
	})
}

func (r *applicationRepo) RejectApplication(app *models.Application) error {
	return r.DB.Model(&models.Application{}).
		Where("id = ?", app.ID).
		Update("status", models.ApplicationStatusRejected).Error
}
