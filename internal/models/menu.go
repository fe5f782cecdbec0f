package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMenuTypes are seeded for every tenant/branch and can never be deleted.
var DefaultMenuTypes = []string{"breakfast", "lunch", "dinner", "drinks"}

type Menu struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BranchID    uuid.UUID  `json:"branch_id" db:"branch_id"`
	MenuType    string     `json:"menu_type" db:"menu_type"`
	DisplayName string     `json:"display_name" db:"display_name"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	IsDefault   bool       `json:"is_default" db:"is_default"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// MenuAssignment joins a food item to a menu type within a tenant. The branch
// is implied by the food item; menu types are shared slugs across branches.
type MenuAssignment struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	MenuType     string    `json:"menu_type" db:"menu_type"`
	FoodItemID   uuid.UUID `json:"food_item_id" db:"food_item_id"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
}
