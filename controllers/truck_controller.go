package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/utils"
)

type truckInput struct {
	Name       string `json:"name" binding:"required"`
	Identifier string `json:"identifier"`
	Color      string `json:"color"`
}

func CreateTruck(c *gin.Context) {
	var in truckInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	_, companyID, ok := identity(c)
	if !ok {
		return
	}

	truck := models.Truck{Name: in.Name, Identifier: in.Identifier, Color: in.Color, CompanyID: companyID}
	if err := config.DB.Create(&truck).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "creating truck failed", err)
		return
	}
	utils.Created(c, "truck added", truck)
}

func GetAllTrucks(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	var trucks []models.Truck
	if err := config.DB.Where("company_id = ?", companyID).Order("name ASC").Find(&trucks).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing trucks failed", err)
		return
	}
	utils.Success(c, "trucks", trucks)
}

func UpdateTruck(c *gin.Context) {
	var in truckInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var truck models.Truck
	if err := config.DB.Where("company_id = ?", companyID).First(&truck, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "truck not found", nil)
		return
	}
	truck.Name = in.Name
	truck.Identifier = in.Identifier
	truck.Color = in.Color
	if err := config.DB.Save(&truck).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "updating truck failed", err)
		return
	}
	utils.Success(c, "truck updated", truck)
}

func DeleteTruck(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var truck models.Truck
	if err := config.DB.Where("company_id = ?", companyID).First(&truck, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "truck not found", nil)
		return
	}

	// A truck still holding items cannot be removed.
	var count int64
	config.DB.Model(&models.InventoryItem{}).
		Where("assigned_truck_id = ?", truck.ID).Count(&count)
	if count > 0 {
		utils.Error(c, http.StatusConflict, "truck still has items assigned", nil)
		return
	}

	if err := config.DB.Delete(&truck).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "deleting truck failed", err)
		return
	}
	utils.Success(c, "truck deleted", nil)
}
