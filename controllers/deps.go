package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tooltrack/notify"
	"tooltrack/service"
	"tooltrack/storage"
	"tooltrack/utils"
)

var (
	images   storage.ImageStore
	notifier notify.Notifier
)

// Init wires the external collaborators the handlers hand to the
// service layer. Must be called before routes are served.
func Init(imageStore storage.ImageStore, n notify.Notifier) {
	images = imageStore
	notifier = n
}

// serviceError maps the service error kinds to HTTP statuses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.Error(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, service.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, service.ErrDuplicate):
		utils.Error(c, http.StatusConflict, "duplicate value", err)
	case errors.Is(err, service.ErrInvalidTransfer):
		utils.Error(c, http.StatusBadRequest, "invalid transfer", err)
	case errors.Is(err, service.ErrInsufficientStock):
		utils.Error(c, http.StatusConflict, "insufficient stock", err)
	case errors.Is(err, service.ErrInsufficientBalance):
		utils.Error(c, http.StatusConflict, "insufficient balance", err)
	case errors.Is(err, service.ErrConflict):
		utils.Error(c, http.StatusConflict, "please retry", err)
	default:
		utils.Error(c, http.StatusInternalServerError, "internal error", err)
	}
}
