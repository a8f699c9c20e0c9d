package models

import (
	"time"

	"gorm.io/gorm"
)

type Agent struct {
	gorm.Model
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"unique;not null" json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Password       string     `gorm:"not null" json:"-"`
	SuperAgentID   *uint      `gorm:"column:super_agent_id;index" json:"super_agent_id"` // null => top-level agent
	RefreshToken   string     `json:"-"`
	OTP            string     `json:"-"`
	OTPGeneratedAt *time.Time `json:"-"`
	LastLogoutAt   *time.Time `gorm:"column:last_logout_at" json:"-"`
}

// IsSubAgent reports whether this account was created under a top-level agent.
func (a *Agent) IsSubAgent() bool {
	return a.SuperAgentID != nil
}

// TopAgentID returns the identifier of the top-level agent of this account's
// hierarchy (the account itself when it is top-level).
func (a *Agent) TopAgentID() uint {
	if a.SuperAgentID != nil {
		return *a.SuperAgentID
	}
	return a.ID
}
