package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/server/response"
)

func (s *Server) handleApplyToLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		loadID, err := paramID(c, "loadID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid load id"))
			return
		}

		var req models.ApplyRequest
		if err := decode(c, &req); err != nil && err.Error() != "EOF" {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		app, apiErr := s.ApplicationService.Apply(user, loadID, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "application submitted", http.StatusCreated, app, nil)
	}
}

func (s *Server) handleGetLoadApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		loadID, err := paramID(c, "loadID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid load id"))
			return
		}

		apps, apiErr := s.ApplicationService.GetApplicationsForLoad(user, loadID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		// Annotate with driver display names for the shipper's table.
		out := make([]models.ApplicationResponse, 0, len(apps))
		for _, app := range apps {
			out = append(out, models.ApplicationResponse{
				Application: app,
				DriverName:  app.Driver.Fullname,
			})
		}

		response.JSON(c, "", http.StatusOK, out, nil)
	}
}

func (s *Server) handleGetMyApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		apps, apiErr := s.ApplicationService.GetMyApplications(user.ID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, apps, nil)
	}
}

func (s *Server) handleAcceptApplication() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		appID, err := paramID(c, "applicationID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid application id"))
			return
		}

		app, apiErr := s.ApplicationService.Accept(user, appID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "application accepted", http.StatusOK, app, nil)
	}
}

func (s *Server) handleRejectApplication() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		appID, err := paramID(c, "applicationID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid application id"))
			return
		}

		app, apiErr := s.ApplicationService.Reject(user, appID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "application rejected", http.StatusOK, app, nil)
	}
}
