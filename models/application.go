package models

import "gorm.io/gorm"

type ApplicationStatus string

const (
	ApplicationPending           ApplicationStatus = "Pending"
	ApplicationVerified          ApplicationStatus = "Verified"
	ApplicationRejected          ApplicationStatus = "Rejected"
	ApplicationDocumentsUploaded ApplicationStatus = "Documents Uploaded"
	ApplicationCompleted         ApplicationStatus = "Completed"
)

type Application struct {
	gorm.Model
	ReferenceNo  string            `gorm:"unique;not null" json:"reference_no"`
	StudentName  string            `gorm:"not null" json:"student_name"`
	StudentEmail string            `json:"student_email"`
	StudentPhone string            `json:"student_phone"`
	CollegeID    *uint             `gorm:"index" json:"college_id"`
	CourseID     *uint             `gorm:"index" json:"course_id"`
	CollegeName  string            `json:"college_name"` // legacy rows reference the catalogue by name only
	CourseName   string            `json:"course_name"`
	IntakeMonth  string            `json:"intake_month"`
	Status       ApplicationStatus `gorm:"not null;default:'Pending'" json:"status"`
	SuperagentID uint              `gorm:"index;not null" json:"superagent_id"`
	SubagentID   *uint             `gorm:"index" json:"subagent_id"`
	DocumentsURL string            `json:"documents_url"`
	Remarks      string            `json:"remarks"`
}
