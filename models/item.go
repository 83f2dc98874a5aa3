package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCondition string

const (
	ConditionGood    ItemCondition = "good"
	ConditionFair    ItemCondition = "fair"
	ConditionPoor    ItemCondition = "poor"
	ConditionDamaged ItemCondition = "damaged"
)

func (c ItemCondition) Valid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged:
		return true
	}
	return false
}

type LocationType string

const (
	LocationWarehouse LocationType = "warehouse"
	LocationTruck     LocationType = "truck"
)

// InventoryItem is one physical unit. AssignedTruckID is set if and
// only if LocationType is truck. Serial numbers and barcodes are
// unique per company; NULL values never collide.
type InventoryItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `json:"category"`

	Barcode      *string `gorm:"uniqueIndex:uq_items_company_barcode,where:barcode IS NOT NULL" json:"barcode"`
	SerialNumber *string `gorm:"uniqueIndex:uq_items_company_serial,where:serial_number IS NOT NULL" json:"serial_number"`

	Condition ItemCondition `gorm:"not null;default:good" json:"condition"`

	LocationType    LocationType `gorm:"not null;default:warehouse" json:"location_type"`
	AssignedTruckID *uint        `gorm:"index" json:"assigned_truck_id"`
	AssignedTruck   *Truck       `gorm:"foreignKey:AssignedTruckID" json:"assigned_truck,omitempty"`

	CompanyID uint `gorm:"not null;index;uniqueIndex:uq_items_company_barcode;uniqueIndex:uq_items_company_serial" json:"company_id"`

	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"unit_price"`

	// Consumable counter and its low-stock threshold.
	Quantity    int `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int `gorm:"not null;default:0" json:"min_quantity"`

	// Units imported together as one logical batch share a GroupID.
	GroupID *string `gorm:"size:36;index" json:"group_id"`

	ImageURL *string `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
