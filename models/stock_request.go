package models

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestReceived  RequestStatus = "received"
)

// StockRequest is one technician's ask for parts from the warehouse.
// Status only moves forward: pending -> fulfilled -> received.
type StockRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	RequesterID uint          `gorm:"not null;index" json:"requester_id"`
	CompanyID   uint          `gorm:"not null;index" json:"company_id"`
	JobNumber   string        `gorm:"not null" json:"job_number"`
	Notes       string        `json:"notes"`
	Status      RequestStatus `gorm:"not null;default:pending" json:"status"`

	Lines []RequestLine `json:"lines"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FulfilledAt *time.Time `json:"fulfilled_at"`
	ReceivedAt  *time.Time `json:"received_at"`
}

// RequestLine is one requested item on a StockRequest. ItemName is a
// snapshot taken at request time so the line stays readable if the
// item is later deleted. Always 0 <= QuantityFulfilled <= QuantityRequested.
type RequestLine struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	StockRequestID uint `gorm:"not null;index" json:"stock_request_id"`

	ItemID            uint    `gorm:"not null" json:"item_id"`
	ItemName          string  `gorm:"not null" json:"item_name"`
	QuantityRequested int     `gorm:"not null" json:"quantity_requested"`
	QuantityFulfilled int     `gorm:"not null;default:0" json:"quantity_fulfilled"`
	Received          bool    `gorm:"not null;default:false" json:"received"`
	FailReason        *string `json:"fail_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
