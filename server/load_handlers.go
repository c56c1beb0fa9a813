package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/server/response"
)

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}

func (s *Server) handleCreateLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.CreateLoadRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		load, apiErr := s.LoadService.CreateLoad(user, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "load posted", http.StatusCreated, load, nil)
	}
}

// handleSearchLoads is public; drivers browse the board before logging
// in.
func (s *Server) handleSearchLoads() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.LoadFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loads, apiErr := s.LoadService.SearchLoads(filter)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, loads, nil)
	}
}

func (s *Server) handleGetLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "loadID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid load id"))
			return
		}

		load, apiErr := s.LoadService.GetLoad(id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, load, nil)
	}
}

func (s *Server) handleGetMyLoads() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		loads, apiErr := s.LoadService.GetMyLoads(user.ID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, loads, nil)
	}
}

func (s *Server) handleUpdateLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		id, err := paramID(c, "loadID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid load id"))
			return
		}

		var req models.UpdateLoadRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		load, apiErr := s.LoadService.UpdateLoad(user, id, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "load updated", http.StatusOK, load, nil)
	}
}

func (s *Server) handleDeleteLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		id, err := paramID(c, "loadID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ValidationError("invalid load id"))
			return
		}

		if apiErr := s.LoadService.DeleteLoad(user, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "load deleted", http.StatusOK, nil, nil)
	}
}
