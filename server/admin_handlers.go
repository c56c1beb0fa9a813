package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/server/response"
	"gorm.io/gorm"
)

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthRepository.GetAllUsers()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		out := make([]models.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, users[i].Response())
		}
		response.JSON(c, "", http.StatusOK, out, nil)
	}
}

func (s *Server) handleGetPendingUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthRepository.GetPendingUsers()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		out := make([]models.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, users[i].Response())
		}
		response.JSON(c, "", http.StatusOK, out, nil)
	}
}

// handleApproveUser flips the approval flag, unlocking posting for the
// account, and mails the user about it.
func (s *Server) handleApproveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := paramID(c, "userID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid user id"))
			return
		}

		if err := s.AuthRepository.ApproveUser(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "", http.StatusNotFound, nil, errs.NotFoundError("user not found"))
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if s.Mail != nil {
			if err := s.Mail.SendAccountApproved(user.Email, user.Fullname); err != nil {
				log.Printf("could not send approval mail: %v", err)
			}
		}

		response.JSON(c, "user approved", http.StatusOK, user.Response(), nil)
	}
}
