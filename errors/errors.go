package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is the type returned across service boundaries. It carries the
// HTTP status the request layer should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	InActiveUserError      = New("user is inactive", http.StatusUnauthorized)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: message: %s", e.Message)
}

// ValidationError marks a missing or malformed request field.
func ValidationError(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// AuthorizationError marks a role or ownership mismatch.
func AuthorizationError(message string) *Error {
	return New(message, http.StatusForbidden)
}

// NotFoundError marks an absent referenced entity.
func NotFoundError(message string) *Error {
	return New(message, http.StatusNotFound)
}

// GetUniqueContraintError translates postgres duplicate-key failures
// into a client-facing message.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint") {
		switch {
		case strings.Contains(msg, "email"):
			return New("email already exists", http.StatusBadRequest)
		case strings.Contains(msg, "phone"):
			return New("phone number already exists", http.StatusBadRequest)
		default:
			return New("record already exists", http.StatusBadRequest)
		}
	}
	return ErrInternalServerError
}
