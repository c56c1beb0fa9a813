package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/server/response"
)

// handleSendMessage persists a direct message from the authenticated
// caller and fans it out to both participants' live sessions.
func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.SendMessageRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		msg, apiErr := s.MessageService.SendMessage(user.ID, req.ReceiverID, req.Content)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "message sent", http.StatusCreated, msg, nil)
	}
}

// handleGetConversation returns the full ordered history between the
// caller and :otherID. An unknown counterpart yields an empty history,
// never an error.
func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		otherID, err := strconv.ParseUint(c.Param("otherID"), 10, 32)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid user id"))
			return
		}

		msgs, apiErr := s.MessageService.GetConversation(user.ID, uint(otherID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, msgs, nil)
	}
}
