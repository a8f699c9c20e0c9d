package models

import "gorm.io/gorm"

type CommissionStatus string

// Commission statuses are lowercase in the database, unlike the other two
// workflows. Kept as-is; existing rows depend on it.
const (
	CommissionPending   CommissionStatus = "pending"
	CommissionCompleted CommissionStatus = "completed"
	CommissionCancelled CommissionStatus = "cancelled"
)

type Commission struct {
	gorm.Model
	ApplicationID uint             `gorm:"index;not null" json:"application_id"`
	TransactionID uint             `gorm:"uniqueIndex;not null" json:"transaction_id"` // one commission per transaction
	AgentID       uint             `gorm:"index;not null" json:"agent_id"`
	SubagentID    uint             `gorm:"index;not null" json:"subagent_id"`
	Amount        float64          `json:"amount"` // snapshot taken at creation time, not recomputed
	Status        CommissionStatus `gorm:"not null;default:'pending'" json:"status"`
}
