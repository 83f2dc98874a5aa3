package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/service"
	"tooltrack/utils"
)

func CreateRequest(c *gin.Context) {
	var in struct {
		JobNumber string                     `json:"job_number" binding:"required"`
		Notes     string                     `json:"notes"`
		Lines     []service.RequestLineInput `json:"lines" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	svc := service.NewRequests(config.DB, notifier)
	request, err := svc.CreateRequest(c.Request.Context(), userID, companyID, in.JobNumber, in.Notes, in.Lines)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "request created", request)
}

func MyRequests(c *gin.Context) {
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	svc := service.NewRequests(config.DB, notifier)
	requests, err := svc.ListForRequester(c.Request.Context(), companyID, userID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing requests failed", err)
		return
	}
	utils.Success(c, "requests", requests)
}

// ConfirmReceipt marks fulfilled lines as received by the requester.
func ConfirmReceipt(c *gin.Context) {
	var in struct {
		LineIDs []uint `json:"line_ids" binding:"required,min=1"`
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
	request, err := svc.ConfirmReceipt(c.Request.Context(), userID, companyID, uint(id), in.LineIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "receipt confirmed", request)
}
