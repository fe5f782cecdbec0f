package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"menucraft/internal/services"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type definitions
const (
	TypeMenuCascade = "catalog:menu_cascade"
	TypeItemCascade = "catalog:item_cascade"
	TypeTranslate   = "catalog:translate"
)

// MenuCascadePayload carries one menu availability flip to the worker.
type MenuCascadePayload struct {
	TenantID uuid.UUID `json:"tenant_id"`
	BranchID uuid.UUID `json:"branch_id"`
	MenuType string    `json:"menu_type"`
	Active   bool      `json:"active"`
}

// ItemCascadePayload carries one food item availability flip to the worker.
type ItemCascadePayload struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	BranchID   uuid.UUID `json:"branch_id"`
	FoodItemID uuid.UUID `json:"food_item_id"`
	Active     bool      `json:"active"`
}

// TranslatePayload asks the worker to refresh one entity's translations.
type TranslatePayload struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
}

// Cascade and translation tasks run at most once: a replayed cascade is
// harmless but a retried half-failed one can mask operator fixes made in
// between, so failures surface in logs instead of retry loops.
var taskOpts = []asynq.Option{asynq.MaxRetry(0)}

func NewMenuCascadeTask(tenantID, branchID uuid.UUID, menuType string, active bool) (*asynq.Task, error) {
	data, err := json.Marshal(MenuCascadePayload{TenantID: tenantID, BranchID: branchID, MenuType: menuType, Active: active})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMenuCascade, data, taskOpts...), nil
}

func NewItemCascadeTask(tenantID, branchID, foodItemID uuid.UUID, active bool) (*asynq.Task, error) {
	data, err := json.Marshal(ItemCascadePayload{TenantID: tenantID, BranchID: branchID, FoodItemID: foodItemID, Active: active})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeItemCascade, data, taskOpts...), nil
}

func NewTranslateTask(tenantID uuid.UUID, entityType string, entityID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(TranslatePayload{TenantID: tenantID, EntityType: entityType, EntityID: entityID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTranslate, data, taskOpts...), nil
}

// Enqueuer hands tasks to the asynq client. It satisfies services.TaskEnqueuer.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueMenuCascade(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	task, err := NewMenuCascadeTask(tenantID, branchID, menuType, active)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

func (e *Enqueuer) EnqueueItemCascade(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error {
	task, err := NewItemCascadeTask(tenantID, branchID, foodItemID, active)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

func (e *Enqueuer) EnqueueTranslation(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error {
	task, err := NewTranslateTask(tenantID, entityType, entityID)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

// Worker owns the asynq handler side of the catalog tasks.
type Worker struct {
	availability services.AvailabilityService
	translation  services.TranslationService
}

func NewWorker(availability services.AvailabilityService, translation services.TranslationService) *Worker {
	return &Worker{availability: availability, translation: translation}
}

// Register binds the catalog task handlers onto the given mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeMenuCascade, w.HandleMenuCascade)
	mux.HandleFunc(TypeItemCascade, w.HandleItemCascade)
	mux.HandleFunc(TypeTranslate, w.HandleTranslate)
}

func (w *Worker) HandleMenuCascade(ctx context.Context, t *asynq.Task) error {
	var payload MenuCascadePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal menu cascade payload: %w", err)
	}

	log.Printf("Cascading menu %s active=%t for tenant %s", payload.MenuType, payload.Active, payload.TenantID)
	if err := w.availability.CascadeMenu(ctx, payload.TenantID, payload.BranchID, payload.MenuType, payload.Active); err != nil {
		log.Printf("Menu cascade failed for tenant %s menu %s: %v", payload.TenantID, payload.MenuType, err)
		return err
	}
	return nil
}

func (w *Worker) HandleItemCascade(ctx context.Context, t *asynq.Task) error {
	var payload ItemCascadePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal item cascade payload: %w", err)
	}

	log.Printf("Cascading food item %s active=%t for tenant %s", payload.FoodItemID, payload.Active, payload.TenantID)
	if err := w.availability.CascadeFoodItem(ctx, payload.TenantID, payload.BranchID, payload.FoodItemID, payload.Active); err != nil {
		log.Printf("Item cascade failed for tenant %s item %s: %v", payload.TenantID, payload.FoodItemID, err)
		return err
	}
	return nil
}

func (w *Worker) HandleTranslate(ctx context.Context, t *asynq.Task) error {
	var payload TranslatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal translate payload: %w", err)
	}

	if err := w.translation.RefreshEntity(ctx, payload.TenantID, payload.EntityType, payload.EntityID); err != nil {
		log.Printf("Translation refresh failed for %s %s: %v", payload.EntityType, payload.EntityID, err)
		return err
	}
	return nil
}
