package models

import (
	"time"

	"github.com/google/uuid"
)

type VariationGroup struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID    *uuid.UUID `json:"branch_id" db:"branch_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// VariationGroupUpdate carries a partial-field update; nil fields are left untouched.
type VariationGroupUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Variation is a sized/styled option of its group; PriceDelta is added to the
// base price of the item the group is attached to.
type Variation struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TenantID   uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	GroupID    uuid.UUID  `json:"group_id" db:"group_id"`
	Name       string     `json:"name" db:"name"`
	PriceDelta float64    `json:"price_delta" db:"price_delta"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// VariationUpdate carries a partial-field update; nil fields are left untouched.
type VariationUpdate struct {
	Name       *string  `json:"name,omitempty"`
	PriceDelta *float64 `json:"price_delta,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}
