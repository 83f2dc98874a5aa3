package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/utils"
)

// ListActivity returns the company's audit trail, newest first.
func ListActivity(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	q := config.DB.Where("company_id = ?", companyID)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var entries []models.ActivityLog
	if err := q.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing activity failed", err)
		return
	}
	utils.Success(c, "activity", entries)
}
