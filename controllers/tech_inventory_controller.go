package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/service"
	"tooltrack/utils"
)

func MyInventory(c *gin.Context) {
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	svc := service.NewTechnicianAccounts(config.DB)
	records, err := svc.ListForTechnician(c.Request.Context(), companyID, userID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing inventory failed", err)
		return
	}
	utils.Success(c, "inventory", records)
}

// UseInventory records consumption against one of the technician's
// own records.
func UseInventory(c *gin.Context) {
	var in struct {
		Amount int    `json:"amount" binding:"required"`
		Job    string `json:"job"`
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

	svc := service.NewTechnicianAccounts(config.DB)
	if err := svc.Use(c.Request.Context(), companyID, userID, uint(id), in.Amount, in.Job); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "usage recorded", nil)
}

// AdminTechnicianInventory lists one technician's records for review.
func AdminTechnicianInventory(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	technicianID, err := strconv.Atoi(c.Query("technician_id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "technician_id query parameter required", err)
		return
	}

	svc := service.NewTechnicianAccounts(config.DB)
	records, err := svc.ListForTechnician(c.Request.Context(), companyID, uint(technicianID))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing inventory failed", err)
		return
	}
	utils.Success(c, "inventory", records)
}
