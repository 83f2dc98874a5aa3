package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tooltrack/models"
)

// TechnicianAccounts owns the per-technician running balances of
// consumable quantities received and used.
type TechnicianAccounts struct {
	db *gorm.DB
}

func NewTechnicianAccounts(db *gorm.DB) *TechnicianAccounts {
	return &TechnicianAccounts{db: db}
}

// Credit merges amount into the technician's active record for the
// item, creating one if none exists. Runs in its own transaction; the
// fulfillment path calls creditTechnician inside its transaction
// instead.
func (s *TechnicianAccounts) Credit(ctx context.Context, companyID, technicianID, itemID uint, itemName string, amount int, jobNumber string, requestID uint) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		return creditTechnician(tx, companyID, technicianID, itemID, itemName, amount, jobNumber, requestID)
	})
}

// creditTechnician is an increment-update-else-insert against the
// partial unique index on (technician_id, item_id, company_id) WHERE
// status='active'. Two concurrent creators race on the index; the
// loser's unique violation surfaces as ErrConflict and is retried.
func creditTechnician(tx *gorm.DB, companyID, technicianID, itemID uint, itemName string, amount int, jobNumber string, requestID uint) error {
	if amount <= 0 {
		return validationf("credit amount must be positive")
	}

	note := fmt.Sprintf("[%s] +%d from job %s (request #%d)",
		time.Now().UTC().Format(time.RFC3339), amount, jobNumber, requestID)

	res := tx.Model(&models.TechnicianInventory{}).
		Where("technician_id = ? AND item_id = ? AND company_id = ? AND status = ?",
			technicianID, itemID, companyID, models.TechnicianInventoryActive).
		Updates(map[string]any{
			"quantity":           gorm.Expr("quantity + ?", amount),
			"remaining_quantity": gorm.Expr("remaining_quantity + ?", amount),
			"notes":              gorm.Expr("notes || ?", "\n"+note),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return recordActivity(tx, companyID, technicianID, models.ActionAdded, itemName, map[string]any{
			"item_id":    itemID,
			"amount":     amount,
			"job_number": jobNumber,
			"request_id": requestID,
		})
	}

	record := models.TechnicianInventory{
		TechnicianID:      technicianID,
		ItemID:            itemID,
		CompanyID:         companyID,
		ItemName:          itemName,
		Quantity:          amount,
		RemainingQuantity: amount,
		JobNumber:         jobNumber,
		RequestID:         requestID,
		Status:            models.TechnicianInventoryActive,
		Notes:             note,
	}
	if err := tx.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: active record for technician %d item %d appeared concurrently",
				ErrConflict, technicianID, itemID)
		}
		return err
	}

	return recordActivity(tx, companyID, technicianID, models.ActionAdded, itemName, map[string]any{
		"item_id":    itemID,
		"amount":     amount,
		"job_number": jobNumber,
		"request_id": requestID,
	})
}

// Use consumes amount from a technician's record. The record turns
// `used` when the remaining quantity reaches zero; a later credit for
// the same item then opens a fresh record.
func (s *TechnicianAccounts) Use(ctx context.Context, companyID, technicianID, recordID uint, amount int, jobReference string) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		var record models.TechnicianInventory
		err := lockForUpdate(tx).
			Where("company_id = ? AND technician_id = ?", companyID, technicianID).
			First(&record, recordID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("inventory record %d", recordID)
		}
		if err != nil {
			return err
		}

		if record.Status != models.TechnicianInventoryActive {
			return validationf("inventory record %d is already fully used", recordID)
		}
		if amount <= 0 {
			return validationf("usage amount must be positive")
		}
		if amount > record.RemainingQuantity {
			return fmt.Errorf("%w: record %d has %d remaining, need %d",
				ErrInsufficientBalance, recordID, record.RemainingQuantity, amount)
		}

		record.UsedQuantity += amount
		record.RemainingQuantity -= amount
		if record.RemainingQuantity == 0 {
			record.Status = models.TechnicianInventoryUsed
		}

		note := fmt.Sprintf("[%s] -%d used", time.Now().UTC().Format(time.RFC3339), amount)
		if jobReference != "" {
			note += " on job " + jobReference
		}
		if record.Notes != "" {
			note = record.Notes + "\n" + note
		}
		record.Notes = note

		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		return recordActivity(tx, companyID, technicianID, models.ActionUsed, record.ItemName, map[string]any{
			"record_id": record.ID,
			"item_id":   record.ItemID,
			"amount":    amount,
			"job":       jobReference,
			"remaining": record.RemainingQuantity,
		})
	})
}

// ListForTechnician returns the technician's records, active first,
// newest within each status.
func (s *TechnicianAccounts) ListForTechnician(ctx context.Context, companyID, technicianID uint) ([]models.TechnicianInventory, error) {
	var records []models.TechnicianInventory
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND technician_id = ?", companyID, technicianID).
		Order("status ASC, id DESC").
		Find(&records).Error
	return records, err
}
