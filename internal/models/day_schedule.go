package models

import "time"

// Weekday segue time.Weekday: 0=domingo.
type DaySchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"index:idx_branch_weekday" json:"branch_id"`

	Weekday int `gorm:"index:idx_branch_weekday" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
