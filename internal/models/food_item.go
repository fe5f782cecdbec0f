package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock modes for a food item. Unlimited items never run out; tracked items
// carry a counted stock managed elsewhere; daily items reset availability
// every service day.
const (
	StockModeUnlimited = "unlimited"
	StockModeTracked   = "tracked"
	StockModeDaily     = "daily"
)

type FoodItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID    uuid.UUID  `json:"branch_id" db:"branch_id"`
	CategoryID  uuid.UUID  `json:"category_id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	BasePrice   float64    `json:"base_price" db:"base_price"`
	StockMode   string     `json:"stock_mode" db:"stock_mode"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Owned children, loaded on demand; never persisted through the item row.
	Labels        []string       `json:"labels,omitempty" db:"-"`
	AddOnGroupIDs []uuid.UUID    `json:"addon_group_ids,omitempty" db:"-"`
	Discounts     []ItemDiscount `json:"discounts,omitempty" db:"-"`
}

// ItemDiscount is a time-bounded percentage discount owned by a food item.
type ItemDiscount struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FoodItemID uuid.UUID `json:"food_item_id" db:"food_item_id"`
	Name       string    `json:"name" db:"name"`
	Percent    float64   `json:"percent" db:"percent"`
	StartsAt   time.Time `json:"starts_at" db:"starts_at"`
	EndsAt     time.Time `json:"ends_at" db:"ends_at"`
}

// FoodItemUpdate carries a partial-field update; nil fields are left untouched.
type FoodItemUpdate struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	BasePrice   *float64   `json:"base_price,omitempty"`
	StockMode   *string    `json:"stock_mode,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}
