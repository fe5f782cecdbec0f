package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID     *uuid.UUID `json:"branch_id" db:"branch_id"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description" db:"description"`
	CategoryType string     `json:"category_type" db:"category_type"`
	ParentID     *uuid.UUID `json:"parent_id" db:"parent_id"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// CategoryUpdate carries a partial-field update; nil fields are left untouched.
type CategoryUpdate struct {
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CategoryType *string    `json:"category_type,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	DisplayOrder *int       `json:"display_order,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}
