package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityAction string

const (
	ActionAdded       ActivityAction = "added"
	ActionDeleted     ActivityAction = "deleted"
	ActionTransferred ActivityAction = "transferred"
	ActionUsed        ActivityAction = "used"
	ActionReceived    ActivityAction = "received"
)

// ActivityLog is an append-only audit trail entry. Rows are never
// updated or deleted.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CompanyID uint           `gorm:"not null;index" json:"company_id"`
	ActorID   uint           `gorm:"not null" json:"actor_id"`
	Action    ActivityAction `gorm:"not null;index" json:"action"`
	Subject   string         `gorm:"not null" json:"subject"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
