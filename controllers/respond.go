package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"saltbay-backend/middleware"
	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error kind to its HTTP status.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	utils.JSONError(c, status, err.Error())
}

// currentActor reads the authenticated caller placed on the context by
// middleware.RequireAuth.
func currentActor(c *gin.Context) services.Actor {
	actor := services.Actor{}
	if v, ok := c.Get(middleware.CtxUserID); ok {
		actor.UserID = v.(uint)
	}
	if v, ok := c.Get(middleware.CtxUserRole); ok {
		actor.Role = v.(models.Role)
	}
	return actor
}

// idParam parses the numeric :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseQueryUint reads an optional numeric query parameter, zero when absent
// or malformed.
func parseQueryUint(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseOptionalDate is parseDate for fields that may be absent.
func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseDate(value)
}
