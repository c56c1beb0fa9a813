package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/server/response"
)

func (s *Server) handleCreateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.CreateReviewRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		review, apiErr := s.ReviewService.CreateReview(user, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "review posted", http.StatusCreated, review, nil)
	}
}

func (s *Server) handleGetUserReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID, err := paramID(c, "userID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid user id"))
			return
		}

		reviews, apiErr := s.ReviewService.GetReviewsForUser(subjectID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, reviews, nil)
	}
}
