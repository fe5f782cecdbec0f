package services

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TaskEnqueuer hands availability cascades and translation refreshes to the
// background queue. Enqueue failures never fail the caller's request; the
// synchronous flag flip has already committed.
type TaskEnqueuer interface {
	EnqueueMenuCascade(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error
	EnqueueItemCascade(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error
	EnqueueTranslation(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error
}

type AvailabilityService interface {
	SetMenuActive(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error
	SetFoodItemActive(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error

	// Worker entry points, called from the task handlers. Both are idempotent:
	// replaying a cascade converges on the same state.
	CascadeMenu(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error
	CascadeFoodItem(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error
}

type availabilityService struct {
	menuRepo       repositories.MenuRepository
	assignmentRepo repositories.MenuAssignmentRepository
	foodItemRepo   repositories.FoodItemRepository
	enqueuer       TaskEnqueuer
	recorder       events.Recorder
}

func NewAvailabilityService(menuRepo repositories.MenuRepository, assignmentRepo repositories.MenuAssignmentRepository,
	foodItemRepo repositories.FoodItemRepository, enqueuer TaskEnqueuer, recorder events.Recorder) AvailabilityService {
	return &availabilityService{
		menuRepo:       menuRepo,
		assignmentRepo: assignmentRepo,
		foodItemRepo:   foodItemRepo,
		enqueuer:       enqueuer,
		recorder:       recorder,
	}
}

func (s *availabilityService) SetMenuActive(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	menu, err := s.menuRepo.GetByType(ctx, tenantID, branchID, menuType)
	if err != nil {
		return &common.PersistenceError{Op: "get menu", Err: err}
	}
	if menu == nil {
		return &common.ReferenceNotFoundError{EntityType: models.EntityTypeMenu, Name: menuType}
	}
	if err := s.menuRepo.SetActive(ctx, tenantID, branchID, menuType, active); err != nil {
		return &common.PersistenceError{Op: "set menu active", Err: err}
	}
	if err := s.enqueuer.EnqueueMenuCascade(ctx, tenantID, branchID, menuType, active); err != nil {
		s.recorder.SwallowedError(models.EntityTypeMenu, menu.ID, events.KindEnqueue, err)
	}
	return nil
}

func (s *availabilityService) SetFoodItemActive(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error {
	item, err := s.foodItemRepo.GetByID(ctx, tenantID, foodItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: foodItemID.String()}
		}
		return &common.PersistenceError{Op: "get food item", Err: err}
	}
	if err := s.foodItemRepo.SetActive(ctx, tenantID, foodItemID, active); err != nil {
		return &common.PersistenceError{Op: "set food item active", Err: err}
	}
	if err := s.enqueuer.EnqueueItemCascade(ctx, tenantID, branchID, foodItemID, active); err != nil {
		s.recorder.SwallowedError(models.EntityTypeFoodItem, item.ID, events.KindEnqueue, err)
	}
	return nil
}

// CascadeMenu fans a menu flip out to the items it contains. Assignments are
// keyed by menu type across the whole tenant, so the fetch is restricted to
// the flipped branch's items; another branch sharing the type is untouched.
// Activation activates every assigned item. Deactivation only deactivates an
// item that no other active menu on the branch still contains.
func (s *availabilityService) CascadeMenu(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	assignments, err := s.assignmentRepo.ListByMenuTypeForBranch(ctx, tenantID, branchID, menuType)
	if err != nil {
		return fmt.Errorf("failed to list assignments for menu %s: %w", menuType, err)
	}
	if len(assignments) == 0 {
		return nil
	}

	itemIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		itemIDs = append(itemIDs, a.FoodItemID)
	}

	if active {
		return s.foodItemRepo.BulkSetActive(ctx, tenantID, itemIDs, true)
	}

	// The menu row is already inactive, so the counts only reflect other menus.
	counts, err := s.assignmentRepo.CountActiveMenusByItems(ctx, tenantID, branchID, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to count active menus per item: %w", err)
	}
	var deactivate []uuid.UUID
	for _, itemID := range itemIDs {
		if counts[itemID] == 0 {
			deactivate = append(deactivate, itemID)
		}
	}
	return s.foodItemRepo.BulkSetActive(ctx, tenantID, deactivate, false)
}

// CascadeFoodItem fans an item flip out to the menus it sits on. Activation
// activates those menus, creating any missing menu row with a display name
// derived from the type, but skips the fan-out entirely when the item is
// already active on some active menu. Deactivation only deactivates a menu
// left with no active items.
func (s *availabilityService) CascadeFoodItem(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error {
	assignments, err := s.assignmentRepo.ListByFoodItem(ctx, tenantID, foodItemID)
	if err != nil {
		return fmt.Errorf("failed to list assignments for item %s: %w", foodItemID, err)
	}
	if len(assignments) == 0 {
		return nil
	}

	menuTypes := make([]string, 0, len(assignments))
	for _, a := range assignments {
		menuTypes = append(menuTypes, a.MenuType)
	}

	if active {
		// An item already reachable through an active menu needs no fan-out;
		// forcing its other menus active would surface their whole contents.
		counts, err := s.assignmentRepo.CountActiveMenusByItems(ctx, tenantID, branchID, []uuid.UUID{foodItemID})
		if err != nil {
			return fmt.Errorf("failed to count active menus for item %s: %w", foodItemID, err)
		}
		if counts[foodItemID] > 0 {
			return nil
		}

		menus, err := s.menuRepo.GetByTypes(ctx, tenantID, branchID, menuTypes)
		if err != nil {
			return fmt.Errorf("failed to load menus: %w", err)
		}
		existing := make(map[string]bool, len(menus))
		for _, m := range menus {
			existing[m.MenuType] = true
		}
		for _, menuType := range menuTypes {
			if existing[menuType] {
				continue
			}
			menu := &models.Menu{
				ID:          uuid.New(),
				TenantID:    tenantID,
				BranchID:    branchID,
				MenuType:    menuType,
				DisplayName: menuDisplayName(menuType),
				IsActive:    true,
			}
			if err := s.menuRepo.Create(ctx, menu); err != nil && !common.IsUniqueViolation(err) {
				return fmt.Errorf("failed to create menu %s: %w", menuType, err)
			}
		}
		return s.menuRepo.BulkSetActiveByTypes(ctx, tenantID, branchID, menuTypes, true)
	}

	// The item row is already inactive, so the counts only reflect other items.
	counts, err := s.assignmentRepo.CountActiveItemsByMenus(ctx, tenantID, menuTypes)
	if err != nil {
		return fmt.Errorf("failed to count active items per menu: %w", err)
	}
	var deactivate []string
	for _, menuType := range menuTypes {
		if counts[menuType] == 0 {
			deactivate = append(deactivate, menuType)
		}
	}
	return s.menuRepo.BulkSetActiveByTypes(ctx, tenantID, branchID, deactivate, false)
}

func menuDisplayName(menuType string) string {
	r, size := utf8.DecodeRuneInString(menuType)
	if size == 0 {
		return menuType
	}
	return string(unicode.ToUpper(r)) + menuType[size:]
}
