package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/service"
	"tooltrack/utils"
)

func AdminListRequests(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}

	svc := service.NewRequests(config.DB, notifier)
	requests, err := svc.ListAll(c.Request.Context(), companyID, models.RequestStatus(c.Query("status")))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing requests failed", err)
		return
	}
	utils.Success(c, "requests", requests)
}

func AdminGetRequest(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	svc := service.NewRequests(config.DB, notifier)
	request, err := svc.Get(c.Request.Context(), companyID, uint(id))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "request", request)
}

// FulfillRequest applies the admin's per-line fulfillment quantities.
// Lines that could not be fulfilled come back as warnings alongside
// the updated request.
func FulfillRequest(c *gin.Context) {
	var in struct {
		Lines []service.LineFulfillment `json:"lines" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	svc := service.NewRequests(config.DB, notifier)
	result, err := svc.Fulfill(c.Request.Context(), userID, companyID, uint(id), in.Lines)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "request fulfilled", result)
}
