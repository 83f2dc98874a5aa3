package models

import "github.com/shopspring/decimal"

// ImportRow is one validated row from a bulk upload. Parsing and
// column validation happen upstream; this core only resolves the
// category, applies defaults and materializes the units.
type ImportRow struct {
	Name         string          `json:"name" binding:"required"`
	CategoryName string          `json:"category" binding:"required"`
	SerialNumber *string         `json:"serial_number"`
	Description  string          `json:"description"`
	Barcode      *string         `json:"barcode"`
	Condition    ItemCondition   `json:"condition"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`

	// Optional image for the row, attached to the representative unit.
	Image []byte `json:"-"`
}
