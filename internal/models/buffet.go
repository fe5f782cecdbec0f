package models

import (
	"time"

	"github.com/google/uuid"
)

type Buffet struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TenantID       uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID       uuid.UUID  `json:"branch_id" db:"branch_id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	PricePerPerson float64    `json:"price_per_person" db:"price_per_person"`
	AvailableFrom  string     `json:"available_from" db:"available_from"` // "HH:MM"
	AvailableTo    string     `json:"available_to" db:"available_to"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
