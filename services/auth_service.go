package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	apiError "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, *apiError.Error)
	EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.User, *apiError.Error)
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		return nil, apiError.New("email already exists", http.StatusBadRequest)
	}

	var roleName string
	switch request.Role {
	case "shipper":
		roleName = models.RoleShipper
	case "driver":
		roleName = models.RoleDriver
	default:
		return nil, apiError.ValidationError("role must be shipper or driver")
	}
	role, err := s.authRepo.FindRoleByName(roleName)
	if err != nil {
		log.Printf("SignupUser error fetching role: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Fullname:       request.Fullname,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		Company:        request.Company,
		Phone:          request.Phone,
		RoleID:         role.ID,
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	createdUser, err := s.authRepo.FindUserByID(user.ID)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return createdUser, nil
}

// LoginUser logs in a user and returns the login response
func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("error finding user by email: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, foundUser.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating access token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: foundUser.Response(),
		AccessToken:  accessToken,
	}, nil
}

func (s *authService) GetUserProfile(userID uint) (*models.User, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("user not found")
		}
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.User, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("user not found")
		}
		return nil, apiError.ErrInternalServerError
	}

	if request.Fullname != "" {
		user.Fullname = request.Fullname
	}
	if request.Company != "" {
		user.Company = request.Company
	}
	if request.Phone != "" {
		user.Phone = request.Phone
	}

	if err := s.authRepo.UpdateUser(user); err != nil {
		log.Printf("EditUserProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}
