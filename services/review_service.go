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

// ReviewService interface
type ReviewService interface {
	CreateReview(author *models.User, request *models.CreateReviewRequest) (*models.Review, *apiError.Error)
	GetReviewsForUser(subjectID uint) ([]models.Review, *apiError.Error)
}

type reviewService struct {
	Config     *config.Config
	reviewRepo db.ReviewRepository
	loadRepo   db.LoadRepository
	appRepo    db.ApplicationRepository
	authRepo   db.AuthRepository
}

// NewReviewService instantiate a reviewService
func NewReviewService(reviewRepo db.ReviewRepository, loadRepo db.LoadRepository, appRepo db.ApplicationRepository, authRepo db.AuthRepository, conf *config.Config) ReviewService {
	return &reviewService{
		Config:     conf,
		reviewRepo: reviewRepo,
		loadRepo:   loadRepo,
		appRepo:    appRepo,
		authRepo:   authRepo,
	}
}

// CreateReview lets either party of a delivered load review the other,
// once per load.
func (s *reviewService) CreateReview(author *models.User, request *models.CreateReviewRequest) (*models.Review, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}
	if request.SubjectID == author.ID {
		return nil, apiError.ValidationError("cannot review yourself")
	}

	if _, err := s.authRepo.FindUserByID(request.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("subject not found")
		}
		return nil, apiError.ErrInternalServerError
	}

	load, err := s.loadRepo.FindLoadByID(request.LoadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("load not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	if load.Status != models.LoadStatusDelivered {
		return nil, apiError.ValidationError("load has not been delivered")
	}

	if apiErr := s.checkParticipant(load, author.ID, request.SubjectID); apiErr != nil {
		return nil, apiErr
	}

	reviewed, err := s.reviewRepo.HasReviewed(author.ID, load.ID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	if reviewed {
		return nil, apiError.ValidationError("load already reviewed")
	}

	review := &models.Review{
		AuthorID:  author.ID,
		SubjectID: request.SubjectID,
		LoadID:    request.LoadID,
		Rating:    request.Rating,
		Comment:   request.Comment,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		log.Printf("CreateReview error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return review, nil
}

// checkParticipant verifies author and subject are the shipper and the
// accepted driver of the load, in either pairing.
func (s *reviewService) checkParticipant(load *models.Load, authorID, subjectID uint) *apiError.Error {
	apps, err := s.appRepo.GetApplicationsByLoad(load.ID)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	var driverID uint
	for _, app := range apps {
		if app.Status == models.ApplicationStatusAccepted {
			driverID = app.DriverID
			break
		}
	}
	if driverID == 0 {
		return apiError.ValidationError("load has no accepted driver")
	}

	shipperAboutDriver := authorID == load.ShipperID && subjectID == driverID
	driverAboutShipper := authorID == driverID && subjectID == load.ShipperID
	if !shipperAboutDriver && !driverAboutShipper {
		return apiError.AuthorizationError("not a participant of this load")
	}
	return nil
}

func (s *reviewService) GetReviewsForUser(subjectID uint) ([]models.Review, *apiError.Error) {
	reviews, err := s.reviewRepo.GetReviewsBySubject(subjectID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return reviews, nil
}
