package models

import "gorm.io/gorm"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionCancelled TransactionStatus = "Cancelled"
)

type Transaction struct {
	gorm.Model
	ApplicationID uint              `gorm:"uniqueIndex;not null" json:"application_id"` // one transaction per application
	SuperagentID  uint              `gorm:"index;not null" json:"superagent_id"`
	SubagentID    *uint             `gorm:"index" json:"subagent_id"`
	StudentName   string            `json:"student_name"`
	CollegeName   string            `json:"college_name"`
	CourseName    string            `json:"course_name"`
	Amount        float64           `json:"amount"`
	Status        TransactionStatus `gorm:"not null;default:'Pending'" json:"status"`
	Notes         string            `json:"notes"`
	PaymentRef    string            `json:"payment_ref"` // Stripe payment intent id once funds are collected
	Paid          bool              `gorm:"default:false" json:"paid"`
}
