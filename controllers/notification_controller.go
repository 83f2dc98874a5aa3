package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tooltrack/notify"
	"tooltrack/utils"
)

// SendTestNotification fires a test event through the configured
// notifier so operators can verify delivery.
func SendTestNotification(c *gin.Context) {
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	err := notifier.Send(notify.KindTest, map[string]any{
		"user_id":    userID,
		"company_id": companyID,
	})
	if err != nil {
		utils.Error(c, http.StatusBadGateway, "notification delivery failed", err)
		return
	}
	utils.Success(c, "test notification sent", nil)
}
