package models

import "time"

type Block struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StaffID  uint `gorm:"index:idx_block_staff_date" json:"staff_id"`
	BranchID uint `json:"branch_id"`

	Kind string `gorm:"size:20;not null" json:"kind"`

	// Date "YYYY-MM-DD"; vazio no descanso recorrente.
	Date      string `gorm:"size:10;index:idx_block_staff_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Bit i = dia da semana i (0=domingo).
	Weekdays uint8 `json:"weekdays"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
