package models

import "time"

// Truck is a mobile storage location items can be assigned to.
type Truck struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Identifier string `json:"identifier"`
	Color      string `json:"color"`
	CompanyID  uint   `gorm:"not null;index" json:"company_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
