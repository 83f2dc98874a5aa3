package service

import (
	"gorm.io/gorm"

	"tooltrack/models"
)

// LowStockEvent signals that an item fell strictly below its
// configured minimum after a decrement.
type LowStockEvent struct {
	ItemID    uint   `json:"item_id"`
	ItemName  string `json:"item_name"`
	Remaining int    `json:"remaining"`
	Minimum   int    `json:"minimum"`
	CompanyID uint   `json:"company_id"`
}

// CheckLowStock evaluates an item against its minimum. For grouped
// individual-unit items the remaining count is the number of units
// still in the group; for counter items it is the quantity field.
// Crossings are not deduplicated — every decrement that leaves the
// item below threshold fires again.
func CheckLowStock(tx *gorm.DB, item *models.InventoryItem) (*LowStockEvent, error) {
	if item.MinQuantity <= 0 {
		return nil, nil
	}

	remaining := item.Quantity
	if item.GroupID != nil {
		var count int64
		if err := tx.Model(&models.InventoryItem{}).
			Where("company_id = ? AND group_id = ?", item.CompanyID, *item.GroupID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		remaining = int(count)
	}

	if remaining >= item.MinQuantity {
		return nil, nil
	}
	return &LowStockEvent{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Remaining: remaining,
		Minimum:   item.MinQuantity,
		CompanyID: item.CompanyID,
	}, nil
}
