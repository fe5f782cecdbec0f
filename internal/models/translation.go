package models

import (
	"time"

	"github.com/google/uuid"
)

// Translation statuses. Machine rows are overwritten by later runs; manual
// rows are operator-approved and never touched by the worker.
const (
	TranslationStatusMachine = "machine"
	TranslationStatusManual  = "manual"
)

// Translation is one translated field of a catalog entity in one locale.
type Translation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id" db:"entity_id"`
	Locale     string    `json:"locale" db:"locale"`
	Field      string    `json:"field" db:"field"`
	Value      string    `json:"value" db:"value"`
	Status     string    `json:"status" db:"status"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
