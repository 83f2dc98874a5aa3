package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tooltrack/models"
)

// recordActivity appends one audit row inside the caller's
// transaction, so the entry commits or rolls back with the mutation
// it describes.
func recordActivity(tx *gorm.DB, companyID, actorID uint, action models.ActivityAction, subject string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding activity details: %w", err)
	}
	entry := models.ActivityLog{
		CompanyID: companyID,
		ActorID:   actorID,
		Action:    action,
		Subject:   subject,
		Details:   datatypes.JSON(payload),
	}
	return tx.Create(&entry).Error
}
