package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account on the load board. Accounts start out
// unapproved; the seeded admin flips the flag before a shipper or
// driver may post.
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"lower,trim"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	Company        string    `json:"company,omitempty" conform:"trim"`
	Phone          string    `json:"phone,omitempty" gorm:"default:null"`
	Approved       bool      `json:"approved" gorm:"default:false"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"lower,trim"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=shipper driver"`
	Company  string `json:"company" conform:"trim"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Approved bool   `json:"approved"`
	RoleName string `json:"role_name"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type EditProfileRequest struct {
	Fullname string `json:"fullname" conform:"trim"`
	Company  string `json:"company" conform:"trim"`
	Phone    string `json:"phone"`
}

// Response flattens a user record for API output, annotating it with
// the role name resolved through the directory.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Email:    u.Email,
		Company:  u.Company,
		Phone:    u.Phone,
		Approved: u.Approved,
		RoleName: u.Role.Name,
	}
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ValidateWhiteSpaces trims and normalises tagged string fields in place.
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
