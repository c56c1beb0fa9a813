package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/server/response"
)

// handleWS upgrades the connection for the authenticated user. The
// session's channel identity is fixed here; the join event only
// confirms it.
func (s *Server) handleWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		s.Hub.ServeWS(c.Writer, c.Request, user.ID)
	}
}
