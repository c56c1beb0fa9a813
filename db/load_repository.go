package db

import (
	"github.com/haulmatch/loadboard/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoadRepository interface
type LoadRepository interface {
	CreateLoad(load *models.Load) error
	FindLoadByID(id uint) (*models.Load, error)
	UpdateLoad(load *models.Load) error
	DeleteLoad(id uint) error
	SearchLoads(filter models.LoadFilter) ([]models.Load, error)
	GetLoadsByShipper(shipperID uint) ([]models.Load, error)
}

type loadRepo struct {
	DB *gorm.DB
}

func NewLoadRepo(db *GormDB) LoadRepository {
	return &loadRepo{db.DB}
}

func (r *loadRepo) CreateLoad(load *models.Load) error {
	if err := r.DB.Create(load).Error; err != nil {
		return errors.Wrap(err, "could not create load")
	}
	return nil
}

func (r *loadRepo) FindLoadByID(id uint) (*models.Load, error) {
	var load models.Load
	if err := r.DB.First(&load, id).Error; err != nil {
		return nil, err
	}
	return &load, nil
}

func (r *loadRepo) UpdateLoad(load *models.Load) error {
	return r.DB.Save(load).Error
}

func (r *loadRepo) DeleteLoad(id uint) error {
	result := r.DB.Delete(&models.Load{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchLoads applies the zero-value-means-any filter. Origin and
// destination match on prefix so "Chi" finds "Chicago, IL".
func (r *loadRepo) SearchLoads(filter models.LoadFilter) ([]models.Load, error) {
	loads := make([]models.Load, 0)
	q := r.DB.Model(&models.Load{})
	if filter.Origin != "" {
		q = q.Where("origin LIKE ?", filter.Origin+"%")
	}
	if filter.Destination != "" {
		q = q.Where("destination LIKE ?", filter.Destination+"%")
	}
	if filter.Equipment != "" {
		q = q.Where("equipment = ?", filter.Equipment)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("created_at desc").Find(&loads).Error; err != nil {
		return nil, errors.Wrap(err, "could not search loads")
	}
	return loads, nil
}

func (r *loadRepo) GetLoadsByShipper(shipperID uint) ([]models.Load, error) {
	loads := make([]models.Load, 0)
	if err := r.DB.Where("shipper_id = ?", shipperID).Order("created_at desc").Find(&loads).Error; err != nil {
		return nil, errors.Wrap(err, "could not list shipper loads")
	}
	return loads, nil
}
