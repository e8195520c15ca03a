package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `gorm:"index" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StaffID uint  `gorm:"index:idx_appointment_staff_date" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Cópia do serviço no momento da reserva.
	ServiceName string `gorm:"size:100" json:"service_name"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	Date      string `gorm:"size:10;not null;index:idx_appointment_staff_date" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes         string     `gorm:"size:255" json:"notes"`
	PriceOverride *float64   `json:"price_override"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
