package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SelectionModeSingle   = "single"
	SelectionModeMultiple = "multiple"
)

type AddOnGroup struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID      *uuid.UUID `json:"branch_id" db:"branch_id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	SelectionMode string     `json:"selection_mode" db:"selection_mode"`
	MaxSelect     int        `json:"max_select" db:"max_select"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// AddOnGroupUpdate carries a partial-field update; nil fields are left untouched.
type AddOnGroupUpdate struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	SelectionMode *string `json:"selection_mode,omitempty"`
	MaxSelect     *int    `json:"max_select,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type AddOn struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	GroupID   uuid.UUID  `json:"group_id" db:"group_id"`
	Name      string     `json:"name" db:"name"`
	Price     float64    `json:"price" db:"price"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// AddOnUpdate carries a partial-field update; nil fields are left untouched.
type AddOnUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}
