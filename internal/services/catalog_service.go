package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CatalogService is the CRUD surface for the option entities hanging off the
// core catalog: add-on groups and add-ons, variation groups and variations,
// buffets and combo meals.
type CatalogService interface {
	CreateAddOnGroup(ctx context.Context, tenantID uuid.UUID, group *models.AddOnGroup) error
	UpdateAddOnGroup(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnGroupUpdate) error
	DeleteAddOnGroup(ctx context.Context, tenantID, id uuid.UUID) error
	ListAddOnGroups(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.AddOnGroup, error)

	CreateAddOn(ctx context.Context, tenantID uuid.UUID, addon *models.AddOn) error
	UpdateAddOn(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnUpdate) error
	DeleteAddOn(ctx context.Context, tenantID, id uuid.UUID) error
	ListAddOns(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.AddOn, error)

	CreateVariationGroup(ctx context.Context, tenantID uuid.UUID, group *models.VariationGroup) error
	UpdateVariationGroup(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationGroupUpdate) error
	DeleteVariationGroup(ctx context.Context, tenantID, id uuid.UUID) error
	ListVariationGroups(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VariationGroup, error)

	CreateVariation(ctx context.Context, tenantID uuid.UUID, variation *models.Variation) error
	UpdateVariation(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationUpdate) error
	DeleteVariation(ctx context.Context, tenantID, id uuid.UUID) error
	ListVariations(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.Variation, error)

	CreateBuffet(ctx context.Context, tenantID uuid.UUID, buffet *models.Buffet) error
	UpdateBuffet(ctx context.Context, tenantID uuid.UUID, buffet *models.Buffet) error
	DeleteBuffet(ctx context.Context, tenantID, id uuid.UUID) error
	ListBuffets(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Buffet, error)

	CreateComboMeal(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error
	UpdateComboMeal(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error
	DeleteComboMeal(ctx context.Context, tenantID, id uuid.UUID) error
	GetComboMeal(ctx context.Context, tenantID, id uuid.UUID) (*models.ComboMeal, error)
	ListComboMeals(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.ComboMeal, error)
}

type catalogService struct {
	addOnGroupRepo     repositories.AddOnGroupRepository
	addOnRepo          repositories.AddOnRepository
	variationGroupRepo repositories.VariationGroupRepository
	variationRepo      repositories.VariationRepository
	buffetRepo         repositories.BuffetRepository
	comboMealRepo      repositories.ComboMealRepository
	foodItemRepo       repositories.FoodItemRepository
	enqueuer           TaskEnqueuer
	recorder           events.Recorder
}

func NewCatalogService(
	addOnGroupRepo repositories.AddOnGroupRepository,
	addOnRepo repositories.AddOnRepository,
	variationGroupRepo repositories.VariationGroupRepository,
	variationRepo repositories.VariationRepository,
	buffetRepo repositories.BuffetRepository,
	comboMealRepo repositories.ComboMealRepository,
	foodItemRepo repositories.FoodItemRepository,
	enqueuer TaskEnqueuer,
	recorder events.Recorder,
) CatalogService {
	return &catalogService{
		addOnGroupRepo:     addOnGroupRepo,
		addOnRepo:          addOnRepo,
		variationGroupRepo: variationGroupRepo,
		variationRepo:      variationRepo,
		buffetRepo:         buffetRepo,
		comboMealRepo:      comboMealRepo,
		foodItemRepo:       foodItemRepo,
		enqueuer:           enqueuer,
		recorder:           recorder,
	}
}

func (s *catalogService) enqueueTranslation(ctx context.Context, tenantID uuid.UUID, entityType string, id uuid.UUID) {
	if err := s.enqueuer.EnqueueTranslation(ctx, tenantID, entityType, id); err != nil {
		s.recorder.SwallowedError(entityType, id, events.KindEnqueue, err)
	}
}

func (s *catalogService) CreateAddOnGroup(ctx context.Context, tenantID uuid.UUID, group *models.AddOnGroup) error {
	if group.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	switch group.SelectionMode {
	case "":
		group.SelectionMode = models.SelectionModeMultiple
	case models.SelectionModeSingle, models.SelectionModeMultiple:
	default:
		return &common.ValidationError{Field: "selection_mode", Reason: fmt.Sprintf("unknown mode %q", group.SelectionMode)}
	}

	existing, err := s.addOnGroupRepo.FindByNaturalKey(ctx, tenantID, group.BranchID, group.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check addon group name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeAddOnGroup, Name: group.Name}
	}

	group.ID = uuid.New()
	group.TenantID = tenantID
	if err := s.addOnGroupRepo.Create(ctx, group); err != nil {
		return common.WrapStoreError("create addon group", models.EntityTypeAddOnGroup, group.Name, err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeAddOnGroup, group.ID)
	return nil
}

func (s *catalogService) UpdateAddOnGroup(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnGroupUpdate) error {
	if err := s.addOnGroupRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update addon group", models.EntityTypeAddOnGroup, id.String(), err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeAddOnGroup, id)
	return nil
}

func (s *catalogService) DeleteAddOnGroup(ctx context.Context, tenantID, id uuid.UUID) error {
	group, err := s.addOnGroupRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeAddOnGroup, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get addon group", Err: err}
	}
	count, err := s.addOnGroupRepo.CountAddOns(ctx, tenantID, id)
	if err != nil {
		return &common.PersistenceError{Op: "count addons", Err: err}
	}
	if count > 0 {
		return &common.ConflictError{EntityType: models.EntityTypeAddOnGroup, Name: group.Name,
			Reason: fmt.Sprintf("still has %d addons", count)}
	}
	if err := s.addOnGroupRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete addon group", Err: err}
	}
	return nil
}

func (s *catalogService) ListAddOnGroups(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.AddOnGroup, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.addOnGroupRepo.List(ctx, tenantID, limit, offset)
}

func (s *catalogService) CreateAddOn(ctx context.Context, tenantID uuid.UUID, addon *models.AddOn) error {
	if addon.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if addon.Price < 0 {
		return &common.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if _, err := s.addOnGroupRepo.GetByID(ctx, tenantID, addon.GroupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeAddOnGroup, Name: addon.GroupID.String()}
		}
		return &common.PersistenceError{Op: "get addon group", Err: err}
	}

	addon.ID = uuid.New()
	addon.TenantID = tenantID
	if err := s.addOnRepo.Create(ctx, addon); err != nil {
		return common.WrapStoreError("create addon", models.EntityTypeAddOn, addon.Name, err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeAddOn, addon.ID)
	return nil
}

func (s *catalogService) UpdateAddOn(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnUpdate) error {
	if upd.Price != nil && *upd.Price < 0 {
		return &common.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if err := s.addOnRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update addon", models.EntityTypeAddOn, id.String(), err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeAddOn, id)
	return nil
}

func (s *catalogService) DeleteAddOn(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.addOnRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete addon", Err: err}
	}
	return nil
}

func (s *catalogService) ListAddOns(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.AddOn, error) {
	return s.addOnRepo.ListByGroup(ctx, tenantID, groupID)
}

func (s *catalogService) CreateVariationGroup(ctx context.Context, tenantID uuid.UUID, group *models.VariationGroup) error {
	if group.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	existing, err := s.variationGroupRepo.FindByNaturalKey(ctx, tenantID, group.BranchID, group.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check variation group name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeVariationGroup, Name: group.Name}
	}

	group.ID = uuid.New()
	group.TenantID = tenantID
	if err := s.variationGroupRepo.Create(ctx, group); err != nil {
		return common.WrapStoreError("create variation group", models.EntityTypeVariationGroup, group.Name, err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeVariationGroup, group.ID)
	return nil
}

func (s *catalogService) UpdateVariationGroup(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationGroupUpdate) error {
	if err := s.variationGroupRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update variation group", models.EntityTypeVariationGroup, id.String(), err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeVariationGroup, id)
	return nil
}

func (s *catalogService) DeleteVariationGroup(ctx context.Context, tenantID, id uuid.UUID) error {
	group, err := s.variationGroupRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeVariationGroup, Name: id.String()}
		}
		return &common.PersistenceError{Op: "get variation group", Err: err}
	}
	count, err := s.variationGroupRepo.CountVariations(ctx, tenantID, id)
	if err != nil {
		return &common.PersistenceError{Op: "count variations", Err: err}
	}
	if count > 0 {
		return &common.ConflictError{EntityType: models.EntityTypeVariationGroup, Name: group.Name,
			Reason: fmt.Sprintf("still has %d variations", count)}
	}
	if err := s.variationGroupRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete variation group", Err: err}
	}
	return nil
}

func (s *catalogService) ListVariationGroups(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VariationGroup, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.variationGroupRepo.List(ctx, tenantID, limit, offset)
}

func (s *catalogService) CreateVariation(ctx context.Context, tenantID uuid.UUID, variation *models.Variation) error {
	if variation.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if _, err := s.variationGroupRepo.GetByID(ctx, tenantID, variation.GroupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.ReferenceNotFoundError{EntityType: models.EntityTypeVariationGroup, Name: variation.GroupID.String()}
		}
		return &common.PersistenceError{Op: "get variation group", Err: err}
	}

	variation.ID = uuid.New()
	variation.TenantID = tenantID
	if err := s.variationRepo.Create(ctx, variation); err != nil {
		return common.WrapStoreError("create variation", models.EntityTypeVariation, variation.Name, err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeVariation, variation.ID)
	return nil
}

func (s *catalogService) UpdateVariation(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationUpdate) error {
	if err := s.variationRepo.UpdateFields(ctx, tenantID, id, upd); err != nil {
		return common.WrapStoreError("update variation", models.EntityTypeVariation, id.String(), err)
	}
	s.enqueueTranslation(ctx, tenantID, models.EntityTypeVariation, id)
	return nil
}

func (s *catalogService) DeleteVariation(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.variationRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete variation", Err: err}
	}
	return nil
}

func (s *catalogService) ListVariations(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.Variation, error) {
	return s.variationRepo.ListByGroup(ctx, tenantID, groupID)
}

func (s *catalogService) CreateBuffet(ctx context.Context, tenantID uuid.UUID, buffet *models.Buffet) error {
	if err := validateBuffet(buffet); err != nil {
		return err
	}
	existing, err := s.buffetRepo.FindByNaturalKey(ctx, tenantID, buffet.BranchID, buffet.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check buffet name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeBuffet, Name: buffet.Name}
	}

	buffet.ID = uuid.New()
	buffet.TenantID = tenantID
	if err := s.buffetRepo.Create(ctx, buffet); err != nil {
		return common.WrapStoreError("create buffet", models.EntityTypeBuffet, buffet.Name, err)
	}
	return nil
}

func (s *catalogService) UpdateBuffet(ctx context.Context, tenantID uuid.UUID, buffet *models.Buffet) error {
	if err := validateBuffet(buffet); err != nil {
		return err
	}
	buffet.TenantID = tenantID
	if err := s.buffetRepo.Update(ctx, buffet); err != nil {
		return common.WrapStoreError("update buffet", models.EntityTypeBuffet, buffet.Name, err)
	}
	return nil
}

func (s *catalogService) DeleteBuffet(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.buffetRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete buffet", Err: err}
	}
	return nil
}

func (s *catalogService) ListBuffets(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Buffet, error) {
	return s.buffetRepo.List(ctx, tenantID, branchID)
}

func validateBuffet(buffet *models.Buffet) error {
	if buffet.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if buffet.PricePerPerson < 0 {
		return &common.ValidationError{Field: "price_per_person", Reason: "must not be negative"}
	}
	if !clockPattern.MatchString(buffet.AvailableFrom) {
		return &common.ValidationError{Field: "available_from", Reason: "must be HH:MM"}
	}
	if !clockPattern.MatchString(buffet.AvailableTo) {
		return &common.ValidationError{Field: "available_to", Reason: "must be HH:MM"}
	}
	return nil
}

func (s *catalogService) CreateComboMeal(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error {
	if err := s.validateComboMeal(ctx, tenantID, combo); err != nil {
		return err
	}
	existing, err := s.comboMealRepo.FindByNaturalKey(ctx, tenantID, combo.BranchID, combo.Name)
	if err != nil {
		return &common.PersistenceError{Op: "check combo meal name", Err: err}
	}
	if existing != nil {
		return &common.ConflictError{EntityType: models.EntityTypeComboMeal, Name: combo.Name}
	}

	combo.ID = uuid.New()
	combo.TenantID = tenantID
	if err := s.comboMealRepo.Create(ctx, combo); err != nil {
		return common.WrapStoreError("create combo meal", models.EntityTypeComboMeal, combo.Name, err)
	}
	return s.replaceComboItems(ctx, tenantID, combo)
}

func (s *catalogService) UpdateComboMeal(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error {
	if err := s.validateComboMeal(ctx, tenantID, combo); err != nil {
		return err
	}
	combo.TenantID = tenantID
	if err := s.comboMealRepo.Update(ctx, combo); err != nil {
		return common.WrapStoreError("update combo meal", models.EntityTypeComboMeal, combo.Name, err)
	}
	return s.replaceComboItems(ctx, tenantID, combo)
}

func (s *catalogService) replaceComboItems(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error {
	for i := range combo.Items {
		if combo.Items[i].ID == uuid.Nil {
			combo.Items[i].ID = uuid.New()
		}
		combo.Items[i].ComboMealID = combo.ID
	}
	if err := s.comboMealRepo.ReplaceItems(ctx, tenantID, combo.ID, combo.Items); err != nil {
		return &common.PersistenceError{Op: "replace combo items", Err: err}
	}
	return nil
}

func (s *catalogService) validateComboMeal(ctx context.Context, tenantID uuid.UUID, combo *models.ComboMeal) error {
	if combo.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if combo.Price < 0 {
		return &common.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if len(combo.Items) == 0 {
		return &common.ValidationError{Field: "items", Reason: "a combo meal needs at least one item"}
	}
	for _, item := range combo.Items {
		if item.Quantity <= 0 {
			return &common.ValidationError{Field: "items", Reason: "quantities must be positive"}
		}
		if _, err := s.foodItemRepo.GetByID(ctx, tenantID, item.FoodItemID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &common.ReferenceNotFoundError{EntityType: models.EntityTypeFoodItem, Name: item.FoodItemID.String()}
			}
			return &common.PersistenceError{Op: "get food item", Err: err}
		}
	}
	return nil
}

func (s *catalogService) DeleteComboMeal(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.comboMealRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return &common.PersistenceError{Op: "delete combo meal", Err: err}
	}
	return nil
}

func (s *catalogService) GetComboMeal(ctx context.Context, tenantID, id uuid.UUID) (*models.ComboMeal, error) {
	combo, err := s.comboMealRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if combo.Items, err = s.comboMealRepo.ListItems(ctx, tenantID, id); err != nil {
		return nil, err
	}
	return combo, nil
}

func (s *catalogService) ListComboMeals(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.ComboMeal, error) {
	return s.comboMealRepo.List(ctx, tenantID, branchID)
}
