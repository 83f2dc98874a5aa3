package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"tooltrack/models"
	"tooltrack/storage"
)

// Inventory owns item records: add, edit, delete, transfer and the
// warehouse stock counter used by fulfillment.
type Inventory struct {
	db     *gorm.DB
	images storage.ImageStore
}

func NewInventory(db *gorm.DB, images storage.ImageStore) *Inventory {
	return &Inventory{db: db, images: images}
}

// Conflict reports which identifier collided with an existing item.
type Conflict struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	ItemID uint   `json:"item_id"`
}

// findConflict scans the company's items for a serial number or
// barcode collision, skipping excludeID so an item never conflicts
// with itself. Nil identifiers never conflict.
func findConflict(tx *gorm.DB, companyID uint, serial, barcode *string, excludeID uint) (*Conflict, error) {
	check := func(field string, value *string) (*Conflict, error) {
		if value == nil || *value == "" {
			return nil, nil
		}
		var existing models.InventoryItem
		err := tx.
			Where("company_id = ? AND "+field+" = ?", companyID, *value).
			Where("id <> ?", excludeID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &Conflict{Field: field, Value: *value, ItemID: existing.ID}, nil
	}

	if c, err := check("serial_number", serial); c != nil || err != nil {
		return c, err
	}
	return check("barcode", barcode)
}

// FindConflict is the duplicate guard as a standalone query.
func (s *Inventory) FindConflict(ctx context.Context, companyID uint, serial, barcode *string, excludeID uint) (*Conflict, error) {
	return findConflict(s.db.WithContext(ctx), companyID, serial, barcode, excludeID)
}

func normalizeItem(item *models.InventoryItem) error {
	if item.Name == "" {
		return validationf("item name is required")
	}
	if item.CategoryID == 0 {
		return validationf("category is required")
	}
	if item.Condition == "" {
		item.Condition = models.ConditionGood
	}
	if !item.Condition.Valid() {
		return validationf("unknown condition %q", item.Condition)
	}
	if item.LocationType == "" {
		item.LocationType = models.LocationWarehouse
	}
	switch item.LocationType {
	case models.LocationTruck:
		if item.AssignedTruckID == nil {
			return validationf("truck assignment is required for truck location")
		}
	case models.LocationWarehouse:
		item.AssignedTruckID = nil
	default:
		return validationf("unknown location type %q", item.LocationType)
	}
	if item.Quantity < 0 || item.MinQuantity < 0 {
		return validationf("quantities cannot be negative")
	}
	if p := item.SerialNumber; p != nil && *p == "" {
		item.SerialNumber = nil
	}
	if p := item.Barcode; p != nil && *p == "" {
		item.Barcode = nil
	}
	return nil
}

func checkItemRefs(tx *gorm.DB, item *models.InventoryItem) error {
	var count int64
	if err := tx.Model(&models.Category{}).
		Where("id = ? AND company_id = ?", item.CategoryID, item.CompanyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFoundf("category %d", item.CategoryID)
	}
	if item.AssignedTruckID != nil {
		if err := tx.Model(&models.Truck{}).
			Where("id = ? AND company_id = ?", *item.AssignedTruckID, item.CompanyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFoundf("truck %d", *item.AssignedTruckID)
		}
	}
	return nil
}

// AddItem validates and persists a new item, stores its image and
// writes an `added` audit entry. An image-store failure is logged and
// the item is kept without a photo.
func (s *Inventory) AddItem(ctx context.Context, actorID uint, item *models.InventoryItem, image []byte) error {
	if err := normalizeItem(item); err != nil {
		return err
	}

	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := checkItemRefs(tx, item); err != nil {
			return err
		}

		conflict, err := findConflict(tx, item.CompanyID, item.SerialNumber, item.Barcode, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return duplicatef("%s %q already in use by item %d", conflict.Field, conflict.Value, conflict.ItemID)
		}

		if err := tx.Create(item).Error; err != nil {
			if isUniqueViolation(err) {
				return duplicatef("serial number or barcode already in use")
			}
			return err
		}

		if len(image) > 0 {
			url, err := s.images.Put(image)
			if err != nil {
				log.Printf("storing image for item %d: %v", item.ID, err)
			} else {
				item.ImageURL = &url
				if err := tx.Model(item).Update("image_url", url).Error; err != nil {
					return err
				}
			}
		}

		return recordActivity(tx, item.CompanyID, actorID, models.ActionAdded, item.Name, map[string]any{
			"item_id":       item.ID,
			"name":          item.Name,
			"serial_number": item.SerialNumber,
			"location":      locationLabel(tx, item),
		})
	})
}

// EditItem applies a full-field update with the same validation and
// duplicate checks as AddItem, excluding the item's own id from the
// uniqueness scan. A replacement image releases the previous asset.
func (s *Inventory) EditItem(ctx context.Context, actorID, companyID, itemID uint, upd *models.InventoryItem, image []byte) error {
	upd.CompanyID = companyID
	if err := normalizeItem(upd); err != nil {
		return err
	}

	var oldImage *string
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := lockForUpdate(tx).
			Where("company_id = ?", companyID).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("item %d", itemID)
			}
			return err
		}

		if err := checkItemRefs(tx, upd); err != nil {
			return err
		}

		conflict, err := findConflict(tx, companyID, upd.SerialNumber, upd.Barcode, item.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return duplicatef("%s %q already in use by item %d", conflict.Field, conflict.Value, conflict.ItemID)
		}

		item.Name = upd.Name
		item.Description = upd.Description
		item.CategoryID = upd.CategoryID
		item.SerialNumber = upd.SerialNumber
		item.Barcode = upd.Barcode
		item.Condition = upd.Condition
		item.LocationType = upd.LocationType
		item.AssignedTruckID = upd.AssignedTruckID
		item.UnitPrice = upd.UnitPrice
		item.Quantity = upd.Quantity
		item.MinQuantity = upd.MinQuantity

		if len(image) > 0 {
			url, err := s.images.Put(image)
			if err != nil {
				log.Printf("storing image for item %d: %v", item.ID, err)
			} else {
				oldImage = item.ImageURL
				item.ImageURL = &url
			}
		}

		if err := tx.Save(&item).Error; err != nil {
			if isUniqueViolation(err) {
				return duplicatef("serial number or barcode already in use")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if oldImage != nil {
		if !s.images.Delete(*oldImage) {
			log.Printf("releasing replaced image %s failed", *oldImage)
		}
	}
	return nil
}

// DeleteItem removes the item and writes a `deleted` audit entry
// carrying the item's last known state. The image asset is released
// after the delete commits.
func (s *Inventory) DeleteItem(ctx context.Context, actorID, companyID, itemID uint) error {
	var imageURL *string
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := lockForUpdate(tx).
			Where("company_id = ?", companyID).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("item %d", itemID)
			}
			return err
		}

		// Captured before the row is gone.
		details := map[string]any{
			"item_id":       item.ID,
			"name":          item.Name,
			"serial_number": item.SerialNumber,
			"location":      locationLabel(tx, &item),
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		imageURL = item.ImageURL

		return recordActivity(tx, companyID, actorID, models.ActionDeleted, item.Name, details)
	})
	if err != nil {
		return err
	}

	if imageURL != nil {
		if !s.images.Delete(*imageURL) {
			log.Printf("releasing image %s failed", *imageURL)
		}
	}
	return nil
}

// TransferItem moves an item between the warehouse and a truck (or
// between trucks). toTruckID nil means the warehouse. Transferring to
// the current location is rejected.
func (s *Inventory) TransferItem(ctx context.Context, actorID, companyID, itemID uint, toTruckID *uint) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := lockForUpdate(tx).
			Where("company_id = ?", companyID).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("item %d", itemID)
			}
			return err
		}

		from := locationLabel(tx, &item)

		if toTruckID == nil {
			if item.LocationType == models.LocationWarehouse {
				return fmt.Errorf("%w: item %d is already in the warehouse", ErrInvalidTransfer, item.ID)
			}
			item.LocationType = models.LocationWarehouse
			item.AssignedTruckID = nil
		} else {
			var truck models.Truck
			if err := tx.Where("company_id = ?", companyID).First(&truck, *toTruckID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("truck %d", *toTruckID)
				}
				return err
			}
			if item.LocationType == models.LocationTruck && item.AssignedTruckID != nil && *item.AssignedTruckID == truck.ID {
				return fmt.Errorf("%w: item %d is already on truck %s", ErrInvalidTransfer, item.ID, truck.Name)
			}
			item.LocationType = models.LocationTruck
			item.AssignedTruckID = &truck.ID
		}

		if err := tx.Model(&item).
			Select("location_type", "assigned_truck_id").
			Updates(map[string]any{
				"location_type":     item.LocationType,
				"assigned_truck_id": item.AssignedTruckID,
			}).Error; err != nil {
			return err
		}

		return recordActivity(tx, companyID, actorID, models.ActionTransferred, item.Name, map[string]any{
			"item_id": item.ID,
			"from":    from,
			"to":      locationLabel(tx, &item),
		})
	})
}

// DecrementWarehouseStock takes amount off a consumable item's
// warehouse counter. Used by the fulfillment path.
func (s *Inventory) DecrementWarehouseStock(ctx context.Context, companyID, itemID uint, amount int) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := lockForUpdate(tx).
			Where("company_id = ?", companyID).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("item %d", itemID)
			}
			return err
		}
		return decrementStock(tx, &item, amount)
	})
}

// SetItemImage replaces the item's photo, releasing the prior asset.
func (s *Inventory) SetItemImage(ctx context.Context, companyID, itemID uint, data []byte) (string, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundf("item %d", itemID)
		}
		return "", err
	}

	url, err := s.images.Put(data)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).
		Model(&item).Update("image_url", url).Error; err != nil {
		return "", err
	}

	if item.ImageURL != nil {
		if !s.images.Delete(*item.ImageURL) {
			log.Printf("releasing replaced image %s failed", *item.ImageURL)
		}
	}
	return url, nil
}

// decrementStock mutates the caller's locked item row. The caller owns
// the transaction.
func decrementStock(tx *gorm.DB, item *models.InventoryItem, amount int) error {
	if amount <= 0 {
		return validationf("decrement amount must be positive")
	}
	if item.LocationType != models.LocationWarehouse {
		return validationf("item %d is not in the warehouse", item.ID)
	}
	if item.Quantity < amount {
		return fmt.Errorf("%w: item %d has %d, need %d", ErrInsufficientStock, item.ID, item.Quantity, amount)
	}
	if err := tx.Model(item).
		Update("quantity", gorm.Expr("quantity - ?", amount)).Error; err != nil {
		return err
	}
	item.Quantity -= amount
	return nil
}

// locationLabel renders an item's location for audit entries:
// "Warehouse" or the truck's name.
func locationLabel(tx *gorm.DB, item *models.InventoryItem) string {
	if item.LocationType != models.LocationTruck || item.AssignedTruckID == nil {
		return "Warehouse"
	}
	var truck models.Truck
	if err := tx.First(&truck, *item.AssignedTruckID).Error; err != nil {
		return fmt.Sprintf("truck %d", *item.AssignedTruckID)
	}
	return truck.Name
}
