package models

import (
	"time"

	"gorm.io/gorm"
)

type Counsellor struct {
	gorm.Model
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"unique;not null" json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Password       string     `gorm:"not null" json:"-"`
	ParentID       uint       `gorm:"index;not null" json:"parent_id"` // agent or sub-agent that created this counsellor
	AgentID        uint       `gorm:"index;not null" json:"agent_id"`  // top-level agent of the hierarchy
	OTP            string     `json:"-"`
	OTPGeneratedAt *time.Time `json:"-"`
}
