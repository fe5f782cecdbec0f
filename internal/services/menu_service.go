package services

import (
	"context"
	"errors"
	"time"

	"menucraft/internal/caching"
	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuService interface {
	List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error)
	Create(ctx context.Context, tenantID, branchID uuid.UUID, menuType, displayName string) (*models.Menu, error)
	Delete(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) error
	SeedDefaults(ctx context.Context, tenantID, branchID uuid.UUID) error

	AssignItem(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, foodItemID uuid.UUID, displayOrder int) error
	UnassignItem(ctx context.Context, tenantID uuid.UUID, menuType string, foodItemID uuid.UUID) error
	ListAssignments(ctx context.Context, tenantID uuid.UUID, menuType string) ([]*models.MenuAssignment, error)
}

type menuService struct {
	menuRepo       repositories.MenuRepository
	assignmentRepo repositories.MenuAssignmentRepository
	foodItemRepo   repositories.FoodItemRepository
	cacheService   caching.CacheService
	recorder       events.Recorder
}

func NewMenuService(menuRepo repositories.MenuRepository, assignmentRepo repositories.MenuAssignmentRepository,
	foodItemRepo repositories.FoodItemRepository, cacheService caching.CacheService, recorder events.Recorder) MenuService {
	return &menuService{
		menuRepo:       menuRepo,
		assignmentRepo: assignmentRepo,
		foodItemRepo:   foodItemRepo,
		cacheService:   cacheService,
		recorder:       recorder,
	}
}

// List seeds the default menus on first touch of a branch, so every branch
// always exposes at least breakfast, lunch, dinner and drinks.
func (s *menuService) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error) {
	if cached, err := s.cacheService.GetMenus(ctx, tenantID, branchID); cached != nil {
		return cached, nil
	} else if err != nil {
		s.recorder.SwallowedError(models.EntityTypeMenu, branchID, events.KindCache, err)
	}

	menus, err := s.menuRepo.List(ctx, tenantID, branchID)
	if err != nil {
		return nil, &common.PersistenceError{Op: "list menus", Err: err}
	}
	if len(menus) == 0 {
		if err := s.menuRepo.SeedDefaults(ctx, tenantID, branchID); err != nil {
			return nil, &common.PersistenceError{Op: "seed default menus", Err: err}
		}
		if menus, err = s.menuRepo.List(ctx, tenantID, branchID); err != nil {
			return nil, &common.PersistenceError{Op: "list menus", Err: err}
		}
	}

	if cacheErr := s.cacheService.SetMenus(ctx, tenantID, branchID, menus, 5*time.Minute); cacheErr != nil {
		s.recorder.SwallowedError(models.EntityTypeMenu, branchID, events.KindCache, cacheErr)
	}
	return menus, nil
}

func (s *menuService) Create(ctx context.Context, tenantID, branchID uuid.UUID, menuType, displayName string) (*models.Menu, error) {
	slug := NormalizeName(menuType)
	if slug == "" {
		return nil, &common.ValidationError{Field: "menu_type", Reason: "is required"}
	}
	if displayName == "" {
		displayName = menuDisplayName(slug)
	}

	existing, err := s.menuRepo.GetByType(ctx, tenantID, branchID, slug)
	if err != nil {
		return nil, &common.PersistenceError{Op: "check menu type", Err: err}
	}
	if existing != nil {
		return nil, &common.ConflictError{EntityType: models.EntityTypeMenu, Name: slug}
	}

	menu := &models.Menu{
		ID:          uuid.New(),
		TenantID:    tenantID,
		BranchID:    branchID,
		MenuType:    slug,
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, common.WrapStoreError("create menu", models.EntityTypeMenu, slug, err)
	}
	s.invalidateMenus(ctx, tenantID, branchID)
	return menu, nil
}

func (s *menuService) Delete(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) error {
	menu, err := s.menuRepo.GetByType(ctx, tenantID, branchID, menuType)
	if err != nil {
		return &common.PersistenceError{Op: "get menu", Err: err}
	}
	if menu == nil {
		return &common.ReferenceNotFoundError{EntityType: models.EntityTypeMenu, Name: menuType}
	}
	if menu.IsDefault {
		return &common.ConflictError{EntityType: models.EntityTypeMenu, Name: menuType, Reason: "default menus cannot be deleted"}
	}
	if err := s.menuRepo.SoftDelete(ctx, tenantID, branchID, menuType); err != nil {
		return &common.PersistenceError{Op: "delete menu", Err: err}
	}
	s.invalidateMenus(ctx, tenantID, branchID)
	return nil
}

func (s *menuService) SeedDefaults(ctx context.Context, tenantID, branchID uuid.UUID) error {
	if err := s.menuRepo.SeedDefaults(ctx, tenantID, branchID); err != nil {
		return &common.PersistenceError{Op: "seed default menus", Err: err}
	}
	s.invalidateMenus(ctx, tenantID, branchID)
	return nil
}

func (s *menuService) AssignItem(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, foodItemID uuid.UUID, displayOrder int) error {
	menu, err := s.menuRepo.GetByType(ctx, tenantID, branchID, menuType)
	if err != nil {
		return &common.PersistenceError{Op: "get menu", Err: err}
	}
	if menu == nil {
		return &common.ReferenceNotFoundError{EntityType: models.EntityTypeMenu, Name: menuType}
	}
	if _, err := s.foodItemRepo.GetByID(ctx, tenantID, foodItemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: foodItemID.String()}
		}
		return &common.PersistenceError{Op: "get food item", Err: err}
	}

	assignment := &models.MenuAssignment{
		ID:           uuid.New(),
		TenantID:     tenantID,
		MenuType:     menu.MenuType,
		FoodItemID:   foodItemID,
		DisplayOrder: displayOrder,
	}
	if err := s.assignmentRepo.Assign(ctx, assignment); err != nil {
		return &common.PersistenceError{Op: "assign item", Err: err}
	}
	return nil
}

func (s *menuService) UnassignItem(ctx context.Context, tenantID uuid.UUID, menuType string, foodItemID uuid.UUID) error {
	if err := s.assignmentRepo.Unassign(ctx, tenantID, menuType, foodItemID); err != nil {
		return &common.PersistenceError{Op: "unassign item", Err: err}
	}
	return nil
}

func (s *menuService) ListAssignments(ctx context.Context, tenantID uuid.UUID, menuType string) ([]*models.MenuAssignment, error) {
	return s.assignmentRepo.ListByMenuType(ctx, tenantID, menuType)
}

func (s *menuService) invalidateMenus(ctx context.Context, tenantID, branchID uuid.UUID) {
	if err := s.cacheService.DeleteMenus(ctx, tenantID, branchID); err != nil {
		s.recorder.SwallowedError(models.EntityTypeMenu, branchID, events.KindCache, err)
	}
}
