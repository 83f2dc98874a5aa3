package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/utils"
)

func CreateCategory(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	_, companyID, ok := identity(c)
	if !ok {
		return
	}

	category := models.Category{Name: in.Name, CompanyID: companyID}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "creating category failed", err)
		return
	}
	utils.Created(c, "category added", category)
}

func GetAllCategories(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	var categories []models.Category
	if err := config.DB.Where("company_id = ?", companyID).Order("name ASC").Find(&categories).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing categories failed", err)
		return
	}
	utils.Success(c, "categories", categories)
}

func DeleteCategory(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var category models.Category
	if err := config.DB.Where("company_id = ?", companyID).First(&category, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "category not found", nil)
		return
	}

	var count int64
	config.DB.Model(&models.InventoryItem{}).
		Where("category_id = ?", category.ID).Count(&count)
	if count > 0 {
		utils.Error(c, http.StatusConflict, "category still has items", nil)
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "deleting category failed", err)
		return
	}
	utils.Success(c, "category deleted", nil)
}
