package models

import "gorm.io/gorm"

type College struct {
	gorm.Model
	Name    string   `gorm:"unique;not null" json:"name"`
	Country string   `json:"country"`
	City    string   `json:"city"`
	Website string   `json:"website"`
	Courses []Course `json:"courses,omitempty"`
}

type Course struct {
	gorm.Model
	CollegeID     uint    `gorm:"index;not null" json:"college_id"`
	Name          string  `gorm:"not null" json:"name"`
	Level         string  `json:"level"` // e.g. "Bachelor", "Master", "Diploma"
	DurationYears int     `json:"duration_years"`
	FirstYearFee  float64 `json:"first_year_fee"`
	TotalFee      float64 `json:"total_fee"`
}
