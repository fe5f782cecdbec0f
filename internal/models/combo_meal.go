package models

import (
	"time"

	"github.com/google/uuid"
)

type ComboMeal struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID    uuid.UUID  `json:"branch_id" db:"branch_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Items []ComboMealItem `json:"items,omitempty" db:"-"`
}

type ComboMealItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ComboMealID uuid.UUID `json:"combo_meal_id" db:"combo_meal_id"`
	FoodItemID  uuid.UUID `json:"food_item_id" db:"food_item_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
}
