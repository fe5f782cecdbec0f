package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"menucraft/internal/caching"
	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FoodItemService interface {
	Create(ctx context.Context, tenantID uuid.UUID, item *models.FoodItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItem, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, upd *models.FoodItemUpdate) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID, branchID uuid.UUID, limit, offset int) ([]*models.FoodItem, error)

	SetLabels(ctx context.Context, tenantID, id uuid.UUID, labels []string) error
	SetAddOnGroups(ctx context.Context, tenantID, id uuid.UUID, groupIDs []uuid.UUID) error
	AddDiscount(ctx context.Context, tenantID, id uuid.UUID, discount *models.ItemDiscount) error
	RemoveDiscount(ctx context.Context, tenantID, id, discountID uuid.UUID) error

	UploadImage(ctx context.Context, tenantID, id uuid.UUID, filename string, reader io.Reader, size int64, altText *string) error
	GetImages(ctx context.Context, tenantID, id uuid.UUID) ([]*models.FoodItemImage, error)
	GetImageURL(ctx context.Context, tenantID, imageID uuid.UUID, expiry time.Duration) (string, error)
	DeleteImage(ctx context.Context, tenantID, imageID uuid.UUID) error
}

type foodItemService struct {
	foodItemRepo   repositories.FoodItemRepository
	categoryRepo   repositories.CategoryRepository
	comboMealRepo  repositories.ComboMealRepository
	addOnGroupRepo repositories.AddOnGroupRepository
	imageRepo      repositories.FoodItemImageRepository
	minioService   MinioService
	cacheService   caching.CacheService
	enqueuer       TaskEnqueuer
	recorder       events.Recorder
}

func NewFoodItemService(foodItemRepo repositories.FoodItemRepository, categoryRepo repositories.CategoryRepository,
	comboMealRepo repositories.ComboMealRepository, addOnGroupRepo repositories.AddOnGroupRepository,
	imageRepo repositories.FoodItemImageRepository, minioService MinioService, cacheService caching.CacheService,
	enqueuer TaskEnqueuer, recorder events.Recorder) FoodItemService {
	return &foodItemService{
		foodItemRepo:   foodItemRepo,
		categoryRepo:   categoryRepo,
		comboMealRepo:  comboMealRepo,
		addOnGroupRepo: addOnGroupRepo,
		imageRepo:      imageRepo,
		minioService:   minioService,
		cacheService:   cacheService,
		enqueuer:       enqueuer,
		recorder:       recorder,
	}
}

func imageBucket(tenantID uuid.UUID) string {
	return fmt.Sprintf("menucraft-images-%s", tenantID.String())
}

func (s *foodItemService) Create(ctx context.Context, tenantID uuid.UUID, item *models.FoodItem) error {
	if item.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if item.BasePrice < 0 {
		return &common.ValidationError{Field: "base_price", Reason: "must not be negative"}
	}
	if item.BranchID == uuid.Nil {
		return &common.ValidationError{Field: "branch_id", Reason: "is required"}
	}
	switch item.StockMode {
	case "":
		item.StockMode = models.StockModeUnlimited
	case models.StockModeUnlimited, models.StockModeTracked, models.StockModeDaily:
	default:
		return &common.ValidationError{Field: "stock_mode", Reason: fmt.Sprintf("unknown mode %q", item.StockMode)}
	}

	if _, err := s.categoryRepo.GetByID(ctx, tenantID, item.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: item.CategoryID.String()}
		}
		return &common.PersistenceError{Op: "get category", Err: err}
	}

	existing, err := s.foodItemRepo.FindByNaturalKey(ctx, tenantID, item.BranchID, item.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check item name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeFoodItem, Name: item.Name}
	}

	item.ID = uuid.New()
	item.TenantID = tenantID
	if err := s.foodItemRepo.Create(ctx, item); err != nil {
		return common.WrapStoreError("create food item", models.EntityTypeFoodItem, item.Name, err)
	}
	if len(item.Labels) > 0 {
		if err := s.foodItemRepo.ReplaceLabels(ctx, tenantID, item.ID, item.Labels); err != nil {
			return &common.PersistenceError{Op: "set labels", Err: err}
		}
	}
	if len(item.AddOnGroupIDs) > 0 {
		if err := s.foodItemRepo.ReplaceAddOnGroups(ctx, tenantID, item.ID, item.AddOnGroupIDs); err != nil {
			return &common.PersistenceError{Op: "set addon groups", Err: err}
		}
	}
	s.enqueueTranslation(ctx, tenantID, item.ID)
	return nil
}

func (s *foodItemService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItem, error) {
	if cached, err := s.cacheService.GetFoodItem(ctx, tenantID, id); cached != nil {
		return cached, nil
	} else if err != nil {
		s.recorder.SwallowedError(models.EntityTypeFoodItem, id, events.KindCache, err)
	}

	item, err := s.foodItemRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item.Labels, err = s.foodItemRepo.ListLabels(ctx, tenantID, id); err != nil {
		return nil, err
	}
	if item.AddOnGroupIDs, err = s.foodItemRepo.ListAddOnGroupIDs(ctx, tenantID, id); err != nil {
		return nil, err
	}
	if item.Discounts, err = s.foodItemRepo.ListDiscounts(ctx, tenantID, id); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetFoodItem(ctx, tenantID, item, 15*time.Minute); cacheErr != nil {
		s.recorder.SwallowedError(models.EntityTypeFoodItem, id, events.KindCache, cacheErr)
	}
	return item, nil
}

func (s *foodItemService) Update(ctx context.Context, tenantID, id uuid.UUID, upd *models.FoodItemUpdate) error {
	item, err := s.foodItemRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get food item", Err: err}
	}
	if upd.BasePrice != nil && *upd.BasePrice < 0 {
		return &common.ValidationError{Field: "base_price", Reason: "must not be negative"}
	}
	if upd.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, tenantID, *upd.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &common.ReferenceNotFoundError{EntityType: models.EntityTypeCategory, Name: upd.CategoryID.String()}
			}
			return &common.PersistenceError{Op: "get category", Err: err}
		}
	}
	if upd.Name != nil && *upd.Name != item.Name {
		existing, err := s.foodItemRepo.FindByNaturalKey(ctx, tenantID, item.BranchID, *upd.Name)
		if err != nil {
			return &common.PersistenceError{Op: "check item name", Err: err}
		}
		if existing != nil && existing.ID != id {
			return &common.ConflictError{EntityType: models.EntityTypeFoodItem, Name: *upd.Name}
		}
	}

	if err := s.foodItemRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update food item", models.EntityTypeFoodItem, item.Name, err)
	}
	s.invalidateItem(ctx, tenantID, id)
	s.enqueueTranslation(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	item, err := s.foodItemRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get food item", Err: err}
	}

	combos, err := s.comboMealRepo.CountByFoodItem(ctx, tenantID, id)
	if err != nil {
		return &common.PersistenceError{Op: "count combo references", Err: err}
	}
	if combos > 0 {
		return &common.ConflictError{EntityType: models.EntityTypeFoodItem, Name: item.Name,
			Reason: fmt.Sprintf("still referenced by %d combo meals", combos)}
	}

	if err := s.foodItemRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete food item", Err: err}
	}
	s.invalidateItem(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) List(ctx context.Context, tenantID, branchID uuid.UUID, limit, offset int) ([]*models.FoodItem, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.foodItemRepo.List(ctx, tenantID, branchID, limit, offset)
}

func (s *foodItemService) SetLabels(ctx context.Context, tenantID, id uuid.UUID, labels []string) error {
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return &common.ValidationError{Field: "labels", Reason: "labels must not be blank"}
		}
	}
	if err := s.foodItemRepo.ReplaceLabels(ctx, tenantID, id, labels); err != nil {
		return &common.PersistenceError{Op: "set labels", Err: err}
	}
	s.invalidateItem(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) SetAddOnGroups(ctx context.Context, tenantID, id uuid.UUID, groupIDs []uuid.UUID) error {
	for _, groupID := range groupIDs {
		if _, err := s.addOnGroupRepo.GetByID(ctx, tenantID, groupID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &common.ReferenceNotFoundError{EntityType: models.EntityTypeAddOnGroup, Name: groupID.String()}
			}
			return &common.PersistenceError{Op: "get addon group", Err: err}
		}
	}
	if err := s.foodItemRepo.ReplaceAddOnGroups(ctx, tenantID, id, groupIDs); err != nil {
		return &common.PersistenceError{Op: "set addon groups", Err: err}
	}
	s.invalidateItem(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) AddDiscount(ctx context.Context, tenantID, id uuid.UUID, discount *models.ItemDiscount) error {
	if discount.Percent <= 0 || discount.Percent > 100 {
		return &common.ValidationError{Field: "percent", Reason: "must be between 0 and 100"}
	}
	if !discount.EndsAt.After(discount.StartsAt) {
		return &common.ValidationError{Field: "ends_at", Reason: "must be after starts_at"}
	}
	discount.ID = uuid.New()
	discount.FoodItemID = id
	if err := s.foodItemRepo.CreateDiscount(ctx, tenantID, discount); err != nil {
		return &common.PersistenceError{Op: "create discount", Err: err}
	}
	s.invalidateItem(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) RemoveDiscount(ctx context.Context, tenantID, id, discountID uuid.UUID) error {
	if err := s.foodItemRepo.DeleteDiscount(ctx, tenantID, id, discountID); err != nil {
		return &common.PersistenceError{Op: "delete discount", Err: err}
	}
	s.invalidateItem(ctx, tenantID, id)
	return nil
}

func (s *foodItemService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, filename string, reader io.Reader, size int64, altText *string) error {
	if _, err := s.foodItemRepo.GetByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get food item", Err: err}
	}

	bucket := imageBucket(tenantID)
	if err := s.minioService.EnsureBucketExists(ctx, bucket); err != nil {
		return &common.PersistenceError{Op: "ensure bucket", Err: err}
	}

	objectKey := fmt.Sprintf("%s/%s%s", id.String(), uuid.New().String(), filepath.Ext(filename))
	if err := s.minioService.UploadImage(ctx, bucket, objectKey, reader, size); err != nil {
		return &common.PersistenceError{Op: "upload image", Err: err}
	}

	image := &models.FoodItemImage{
		ID:         uuid.New(),
		TenantID:   tenantID,
		FoodItemID: id,
		ObjectKey:  objectKey,
		AltText:    altText,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return &common.PersistenceError{Op: "store image record", Err: err}
	}
	return nil
}

func (s *foodItemService) GetImages(ctx context.Context, tenantID, id uuid.UUID) ([]*models.FoodItemImage, error) {
	return s.imageRepo.ListByFoodItem(ctx, tenantID, id)
}

func (s *foodItemService) GetImageURL(ctx context.Context, tenantID, imageID uuid.UUID, expiry time.Duration) (string, error) {
	image, err := s.imageRepo.GetByID(ctx, tenantID, imageID)
	if err != nil {
		return "", &common.PersistenceError{Op: "get image record", Err: err}
	}
	return s.minioService.GetPresignedURL(imageBucket(tenantID), image.ObjectKey, expiry)
}

func (s *foodItemService) DeleteImage(ctx context.Context, tenantID, imageID uuid.UUID) error {
	image, err := s.imageRepo.GetByID(ctx, tenantID, imageID)
	if err != nil {
		return &common.PersistenceError{Op: "get image record", Err: err}
	}
	if err := s.minioService.DeleteImage(ctx, imageBucket(tenantID), image.ObjectKey); err != nil {
		return &common.PersistenceError{Op: "delete image object", Err: err}
	}
	if err := s.imageRepo.Delete(ctx, tenantID, imageID); err != nil {
		return &common.PersistenceError{Op: "delete image record", Err: err}
	}
	return nil
}

func (s *foodItemService) invalidateItem(ctx context.Context, tenantID, id uuid.UUID) {
	if err := s.cacheService.DeleteFoodItem(ctx, tenantID, id); err != nil {
		s.recorder.SwallowedError(models.EntityTypeFoodItem, id, events.KindCache, err)
	}
}

func (s *foodItemService) enqueueTranslation(ctx context.Context, tenantID, id uuid.UUID) {
	if err := s.enqueuer.EnqueueTranslation(ctx, tenantID, models.EntityTypeFoodItem, id); err != nil {
		s.recorder.SwallowedError(models.EntityTypeFoodItem, id, events.KindEnqueue, err)
	}
}
