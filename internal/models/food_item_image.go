package models

import (
	"time"

	"github.com/google/uuid"
)

type FoodItemImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FoodItemID uuid.UUID `json:"food_item_id" db:"food_item_id"`
	ObjectKey  string    `json:"object_key" db:"object_key"`
	AltText    *string   `json:"alt_text" db:"alt_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
