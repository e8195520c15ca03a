package models

import "time"

// Staff é o profissional (barbeiro). Admin pode não ter filial.
type Staff struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	BranchID *uint   `gorm:"index" json:"branch_id"`
	Branch   *Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'regular'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	// Especialidades; vazio significa que atende qualquer serviço.
	Services []Service `gorm:"many2many:staff_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
