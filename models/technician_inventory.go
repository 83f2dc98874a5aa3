package models

import "time"

type TechnicianInventoryStatus string

const (
	TechnicianInventoryActive TechnicianInventoryStatus = "active"
	TechnicianInventoryUsed   TechnicianInventoryStatus = "used"
)

// TechnicianInventory is one technician's running balance of one item
// type. RemainingQuantity = Quantity - UsedQuantity and never goes
// negative; the record turns `used` exactly when it hits zero. The
// partial unique index keeps at most one active record per
// (technician, item, company) — later credits merge into it.
type TechnicianInventory struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	TechnicianID uint `gorm:"not null;uniqueIndex:uq_technician_item_active,where:status = 'active'" json:"technician_id"`
	ItemID       uint `gorm:"not null;uniqueIndex:uq_technician_item_active" json:"item_id"`
	CompanyID    uint `gorm:"not null;index;uniqueIndex:uq_technician_item_active" json:"company_id"`

	ItemName          string `gorm:"not null" json:"item_name"`
	Quantity          int    `gorm:"not null" json:"quantity"`
	UsedQuantity      int    `gorm:"not null;default:0" json:"used_quantity"`
	RemainingQuantity int    `gorm:"not null" json:"remaining_quantity"`

	JobNumber string `json:"job_number"`
	RequestID uint   `gorm:"index" json:"request_id"`

	Status TechnicianInventoryStatus `gorm:"not null;default:active" json:"status"`

	// Append-only log of credit and usage events, one line each.
	Notes string `gorm:"not null;default:''" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TechnicianInventory) TableName() string { return "technician_inventory" }
