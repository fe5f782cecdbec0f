package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menucraft/internal/caching"
	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxCategoryDepth bounds the ancestor walk so corrupt parent data cannot
// spin the cycle check forever.
const maxCategoryDepth = 100

type CategoryService interface {
	Create(ctx context.Context, tenantID uuid.UUID, category *models.Category) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, upd *models.CategoryUpdate) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	foodItemRepo repositories.FoodItemRepository
	cacheService caching.CacheService
	enqueuer     TaskEnqueuer
	recorder     events.Recorder
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, foodItemRepo repositories.FoodItemRepository,
	cacheService caching.CacheService, enqueuer TaskEnqueuer, recorder events.Recorder) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		foodItemRepo: foodItemRepo,
		cacheService: cacheService,
		enqueuer:     enqueuer,
		recorder:     recorder,
	}
}

func (s *categoryService) Create(ctx context.Context, tenantID uuid.UUID, category *models.Category) error {
	if category.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if category.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, tenantID, *category.ParentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: category.ParentID.String()}
			}
			return &common.PersistenceError{Op: "get parent category", Err: err}
		}
	}

	existing, err := s.categoryRepo.FindByNaturalKey(ctx, tenantID, category.BranchID, category.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check category name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: category.Name}
	}

	category.ID = uuid.New()
	category.TenantID = tenantID
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return common.WrapStoreError("create category", models.EntityTypeCategory, category.Name, err)
	}
	s.enqueueTranslation(ctx, tenantID, category.ID)
	return nil
}

func (s *categoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	if cached, err := s.cacheService.GetCategory(ctx, tenantID, id); cached != nil {
		return cached, nil
	} else if err != nil {
		s.recorder.SwallowedError(models.EntityTypeCategory, id, events.KindCache, err)
	}

	category, err := s.categoryRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetCategory(ctx, tenantID, category, 15*time.Minute); cacheErr != nil {
		s.recorder.SwallowedError(models.EntityTypeCategory, id, events.KindCache, cacheErr)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, tenantID, id uuid.UUID, upd *models.CategoryUpdate) error {
	category, err := s.categoryRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get category", Err: err}
	}

	if upd.ParentID != nil {
		if err := s.checkNoCycle(ctx, tenantID, id, *upd.ParentID); err != nil {
			return err
		}
	}
	if upd.Name != nil && *upd.Name != category.Name {
		existing, err := s.categoryRepo.FindByNaturalKey(ctx, tenantID, category.BranchID, *upd.Name)
		if err != nil {
			return &common.PersistenceError{Op: "check category name", Err: err}
		}
		if existing != nil && existing.ID != id {
			return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: *upd.Name}
		}
	}

	if err := s.categoryRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update category", models.EntityTypeCategory, category.Name, err)
	}
	if cacheErr := s.cacheService.DeleteCategory(ctx, tenantID, id); cacheErr != nil {
		s.recorder.SwallowedError(models.EntityTypeCategory, id, events.KindCache, cacheErr)
	}
	s.enqueueTranslation(ctx, tenantID, id)
	return nil
}

// checkNoCycle walks the ancestor chain of the proposed parent all the way to
// the root. Reparenting A under B is refused when A already sits anywhere
// above B, not just when A is B's direct parent.
func (s *categoryService) checkNoCycle(ctx context.Context, tenantID, id, parentID uuid.UUID) error {
	if parentID == id {
		return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: id.String(), Reason: "cannot be its own parent"}
	}
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		ancestor, err := s.categoryRepo.GetByID(ctx, tenantID, current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: current.String()}
			}
			return &common.PersistenceError{Op: "walk category ancestors", Err: err}
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == id {
			return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: id.String(), Reason: "reparenting would create a cycle"}
		}
		current = *ancestor.ParentID
	}
	return fmt.Errorf("category hierarchy deeper than %d levels", maxCategoryDepth)
}

func (s *categoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get category", Err: err}
	}

	items, err := s.foodItemRepo.CountByCategory(ctx, tenantID, id)
	if err != nil {
		return &common.PersistenceError{Op: "count category items", Err: err}
	}
	if items > 0 {
		return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: category.Name,
			Reason: fmt.Sprintf("still referenced by %d food items", items)}
	}
	children, err := s.categoryRepo.CountChildren(ctx, tenantID, id)
	if err != nil {
		return &common.PersistenceError{Op: "count subcategories", Err: err}
	}
	if children > 0 {
		return &common.ConflictError{EntityType: models.EntityTypeCategory, Name: category.Name,
			Reason: fmt.Sprintf("still has %d subcategories", children)}
	}

	if err := s.categoryRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete category", Err: err}
	}
	if cacheErr := s.cacheService.DeleteCategory(ctx, tenantID, id); cacheErr != nil {
		s.recorder.SwallowedError(models.EntityTypeCategory, id, events.KindCache, cacheErr)
	}
	return nil
}

func (s *categoryService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.categoryRepo.List(ctx, tenantID, limit, offset)
}

func (s *categoryService) enqueueTranslation(ctx context.Context, tenantID, id uuid.UUID) {
	if err := s.enqueuer.EnqueueTranslation(ctx, tenantID, models.EntityTypeCategory, id); err != nil {
		s.recorder.SwallowedError(models.EntityTypeCategory, id, events.KindEnqueue, err)
	}
}
