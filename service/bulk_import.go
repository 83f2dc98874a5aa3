package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tooltrack/models"
	"tooltrack/storage"
)

// Importer materializes validated bulk-upload rows into inventory
// items. A row with quantity N > 1 becomes N individually-tracked
// units sharing a generated group id.
type Importer struct {
	db     *gorm.DB
	images storage.ImageStore
}

func NewImporter(db *gorm.DB, images storage.ImageStore) *Importer {
	return &Importer{db: db, images: images}
}

const maxImportQuantity = 500

type RowError struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImportSummary struct {
	RowsImported int        `json:"rows_imported"`
	UnitsCreated int        `json:"units_created"`
	Errors       []RowError `json:"errors,omitempty"`
}

// Import processes each row in its own transaction so one bad row does
// not undo the rest of the batch. One audit entry is written per row,
// not per unit, carrying the group id and quantity.
func (s *Importer) Import(ctx context.Context, actorID, companyID uint, rows []models.ImportRow) (*ImportSummary, error) {
	if len(rows) == 0 {
		return nil, validationf("no rows to import")
	}

	summary := &ImportSummary{}
	for i, row := range rows {
		units, err := s.importRow(ctx, actorID, companyID, row)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: i, Name: row.Name, Reason: err.Error()})
			continue
		}
		summary.RowsImported++
		summary.UnitsCreated += units
	}
	return summary, nil
}

func (s *Importer) importRow(ctx context.Context, actorID, companyID uint, row models.ImportRow) (int, error) {
	if row.Name == "" {
		return 0, validationf("name is required")
	}
	if row.CategoryName == "" {
		return 0, validationf("category is required")
	}
	if row.Condition == "" {
		row.Condition = models.ConditionGood
	}
	if !row.Condition.Valid() {
		return 0, validationf("unknown condition %q", row.Condition)
	}
	quantity := row.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if quantity > maxImportQuantity {
		quantity = maxImportQuantity
	}
	if p := row.SerialNumber; p != nil && *p == "" {
		row.SerialNumber = nil
	}
	if p := row.Barcode; p != nil && *p == "" {
		row.Barcode = nil
	}

	units := 0
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		units = 0

		var category models.Category
		err := tx.Where("company_id = ? AND LOWER(name) = LOWER(?)", companyID, row.CategoryName).
			First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("category %q", row.CategoryName)
		}
		if err != nil {
			return err
		}

		serial, barcode := row.SerialNumber, row.Barcode
		var groupID *string
		if quantity > 1 {
			// One serial or barcode cannot identify N physical units.
			serial, barcode = nil, nil
			id := uuid.NewString()
			groupID = &id
		}

		if serial != nil || barcode != nil {
			conflict, err := findConflict(tx, companyID, serial, barcode, 0)
			if err != nil {
				return err
			}
			if conflict != nil {
				return duplicatef("%s %q already in use by item %d", conflict.Field, conflict.Value, conflict.ItemID)
			}
		}

		var representative *models.InventoryItem
		for i := 0; i < quantity; i++ {
			item := models.InventoryItem{
				Name:         row.Name,
				Description:  row.Description,
				CategoryID:   category.ID,
				SerialNumber: serial,
				Barcode:      barcode,
				Condition:    row.Condition,
				LocationType: models.LocationWarehouse,
				CompanyID:    companyID,
				UnitPrice:    row.UnitPrice,
				GroupID:      groupID,
			}
			if err := tx.Create(&item).Error; err != nil {
				if isUniqueViolation(err) {
					return duplicatef("serial number or barcode already in use")
				}
				return err
			}
			if representative == nil {
				representative = &item
			}
			units++
		}

		// The group shares one image through its representative unit.
		if len(row.Image) > 0 && representative != nil {
			url, err := s.images.Put(row.Image)
			if err != nil {
				log.Printf("storing import image for item %d: %v", representative.ID, err)
			} else if err := tx.Model(representative).Update("image_url", url).Error; err != nil {
				return err
			}
		}

		details := map[string]any{
			"name":     row.Name,
			"category": category.Name,
			"quantity": quantity,
		}
		if groupID != nil {
			details["group_id"] = *groupID
		} else {
			details["item_id"] = representative.ID
		}
		return recordActivity(tx, companyID, actorID, models.ActionAdded,
			fmt.Sprintf("bulk import: %s", row.Name), details)
	})
	if err != nil {
		return 0, err
	}
	return units, nil
}
