package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/service"
	"tooltrack/utils"
)

// BulkImport accepts the validated row set produced by the upload
// parser and materializes the units.
func BulkImport(c *gin.Context) {
	var in struct {
		Rows []models.ImportRow `json:"rows" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	svc := service.NewImporter(config.DB, images)
	summary, err := svc.Import(c.Request.Context(), userID, companyID, in.Rows)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "import finished", summary)
}
