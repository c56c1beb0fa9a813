package db

import (
	"github.com/haulmatch/loadboard/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReviewRepository interface
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewsBySubject(subjectID uint) ([]models.Review, error)
	HasReviewed(authorID, loadID uint) (bool, error)
}

type reviewRepo struct {
	DB *gorm.DB
}

func NewReviewRepo(db *GormDB) ReviewRepository {
	return &reviewRepo{db.DB}
}

func (r *reviewRepo) CreateReview(review *models.Review) error {
	if err := r.DB.Create(review).Error; err != nil {
		return errors.Wrap(err, "could not create review")
	}
	return nil
}

func (r *reviewRepo) GetReviewsBySubject(subjectID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.DB.Where("subject_id = ?", subjectID).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, "could not list reviews")
	}
	return reviews, nil
}

func (r *reviewRepo) HasReviewed(authorID, loadID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Review{}).
		Where("author_id = ? AND load_id = ?", authorID, loadID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check review")
	}
	return count > 0, nil
}
