package services

import (
	"context"
	"io"
	"time"

	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) InsertMany(ctx context.Context, categories []*models.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.Category, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]repositories.NameRef, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.NameRef), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.CategoryUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Int(0), args.Error(1)
}

type MockFoodItemRepository struct {
	mock.Mock
}

func (m *MockFoodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFoodItemRepository) InsertMany(ctx context.Context, items []*models.FoodItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockFoodItemRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.FoodItem, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) ListNames(ctx context.Context, tenantID, branchID uuid.UUID) ([]repositories.NameRef, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.NameRef), args.Error(1)
}

func (m *MockFoodItemRepository) List(ctx context.Context, tenantID, branchID uuid.UUID, limit, offset int) ([]*models.FoodItem, error) {
	args := m.Called(ctx, tenantID, branchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) ListByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) ([]*models.FoodItem, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockFoodItemRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.FoodItemUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockFoodItemRepository) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) error {
	args := m.Called(ctx, tenantID, id, active)
	return args.Error(0)
}

func (m *MockFoodItemRepository) BulkSetActive(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, active bool) error {
	args := m.Called(ctx, tenantID, ids, active)
	return args.Error(0)
}

func (m *MockFoodItemRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockFoodItemRepository) ReplaceLabels(ctx context.Context, tenantID, itemID uuid.UUID, labels []string) error {
	args := m.Called(ctx, tenantID, itemID, labels)
	return args.Error(0)
}

func (m *MockFoodItemRepository) ListLabels(ctx context.Context, tenantID, itemID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFoodItemRepository) ReplaceAddOnGroups(ctx context.Context, tenantID, itemID uuid.UUID, groupIDs []uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID, groupIDs)
	return args.Error(0)
}

func (m *MockFoodItemRepository) ListAddOnGroupIDs(ctx context.Context, tenantID, itemID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFoodItemRepository) ResetDailyAvailability(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodItemRepository) PurgeExpiredDiscounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodItemRepository) CreateDiscount(ctx context.Context, tenantID uuid.UUID, discount *models.ItemDiscount) error {
	args := m.Called(ctx, tenantID, discount)
	return args.Error(0)
}

func (m *MockFoodItemRepository) ListDiscounts(ctx context.Context, tenantID, itemID uuid.UUID) ([]models.ItemDiscount, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemDiscount), args.Error(1)
}

func (m *MockFoodItemRepository) DeleteDiscount(ctx context.Context, tenantID, itemID, discountID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID, discountID)
	return args.Error(0)
}

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Create(ctx context.Context, menu *models.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) GetByType(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) (*models.Menu, error) {
	args := m.Called(ctx, tenantID, branchID, menuType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Menu), args.Error(1)
}

func (m *MockMenuRepository) GetByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string) ([]*models.Menu, error) {
	args := m.Called(ctx, tenantID, branchID, menuTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Menu), args.Error(1)
}

func (m *MockMenuRepository) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Menu), args.Error(1)
}

func (m *MockMenuRepository) SetActive(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	args := m.Called(ctx, tenantID, branchID, menuType, active)
	return args.Error(0)
}

func (m *MockMenuRepository) BulkSetActiveByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string, active bool) error {
	args := m.Called(ctx, tenantID, branchID, menuTypes, active)
	return args.Error(0)
}

func (m *MockMenuRepository) SoftDelete(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) error {
	args := m.Called(ctx, tenantID, branchID, menuType)
	return args.Error(0)
}

func (m *MockMenuRepository) SeedDefaults(ctx context.Context, tenantID, branchID uuid.UUID) error {
	args := m.Called(ctx, tenantID, branchID)
	return args.Error(0)
}

type MockMenuAssignmentRepository struct {
	mock.Mock
}

func (m *MockMenuAssignmentRepository) Assign(ctx context.Context, assignment *models.MenuAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockMenuAssignmentRepository) Unassign(ctx context.Context, tenantID uuid.UUID, menuType string, foodItemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, menuType, foodItemID)
	return args.Error(0)
}

func (m *MockMenuAssignmentRepository) ListByMenuType(ctx context.Context, tenantID uuid.UUID, menuType string) ([]*models.MenuAssignment, error) {
	args := m.Called(ctx, tenantID, menuType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuAssignment), args.Error(1)
}

func (m *MockMenuAssignmentRepository) ListByMenuTypeForBranch(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) ([]*models.MenuAssignment, error) {
	args := m.Called(ctx, tenantID, branchID, menuType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuAssignment), args.Error(1)
}

func (m *MockMenuAssignmentRepository) ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.MenuAssignment, error) {
	args := m.Called(ctx, tenantID, foodItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuAssignment), args.Error(1)
}

func (m *MockMenuAssignmentRepository) CountActiveMenusByItems(ctx context.Context, tenantID, branchID uuid.UUID, foodItemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, tenantID, branchID, foodItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockMenuAssignmentRepository) CountActiveItemsByMenus(ctx context.Context, tenantID uuid.UUID, menuTypes []string) (map[string]int, error) {
	args := m.Called(ctx, tenantID, menuTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockAddOnGroupRepository struct {
	mock.Mock
}

func (m *MockAddOnGroupRepository) Create(ctx context.Context, group *models.AddOnGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAddOnGroupRepository) InsertMany(ctx context.Context, groups []*models.AddOnGroup) error {
	args := m.Called(ctx, groups)
	return args.Error(0)
}

func (m *MockAddOnGroupRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOnGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddOnGroup), args.Error(1)
}

func (m *MockAddOnGroupRepository) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.AddOnGroup, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddOnGroup), args.Error(1)
}

func (m *MockAddOnGroupRepository) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]repositories.NameRef, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.NameRef), args.Error(1)
}

func (m *MockAddOnGroupRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.AddOnGroup, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AddOnGroup), args.Error(1)
}

func (m *MockAddOnGroupRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnGroupUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockAddOnGroupRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAddOnGroupRepository) CountAddOns(ctx context.Context, tenantID, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, groupID)
	return args.Int(0), args.Error(1)
}

type MockAddOnRepository struct {
	mock.Mock
}

func (m *MockAddOnRepository) Create(ctx context.Context, addon *models.AddOn) error {
	args := m.Called(ctx, addon)
	return args.Error(0)
}

func (m *MockAddOnRepository) InsertMany(ctx context.Context, addons []*models.AddOn) error {
	args := m.Called(ctx, addons)
	return args.Error(0)
}

func (m *MockAddOnRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOn, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddOn), args.Error(1)
}

func (m *MockAddOnRepository) ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.AddOn, error) {
	args := m.Called(ctx, tenantID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AddOn), args.Error(1)
}

func (m *MockAddOnRepository) ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]repositories.ChildNameRef, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ChildNameRef), args.Error(1)
}

func (m *MockAddOnRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockAddOnRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockVariationGroupRepository struct {
	mock.Mock
}

func (m *MockVariationGroupRepository) Create(ctx context.Context, group *models.VariationGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockVariationGroupRepository) InsertMany(ctx context.Context, groups []*models.VariationGroup) error {
	args := m.Called(ctx, groups)
	return args.Error(0)
}

func (m *MockVariationGroupRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VariationGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariationGroup), args.Error(1)
}

func (m *MockVariationGroupRepository) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.VariationGroup, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariationGroup), args.Error(1)
}

func (m *MockVariationGroupRepository) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]repositories.NameRef, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.NameRef), args.Error(1)
}

func (m *MockVariationGroupRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VariationGroup, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VariationGroup), args.Error(1)
}

func (m *MockVariationGroupRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationGroupUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockVariationGroupRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVariationGroupRepository) CountVariations(ctx context.Context, tenantID, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, groupID)
	return args.Int(0), args.Error(1)
}

type MockVariationRepository struct {
	mock.Mock
}

func (m *MockVariationRepository) Create(ctx context.Context, variation *models.Variation) error {
	args := m.Called(ctx, variation)
	return args.Error(0)
}

func (m *MockVariationRepository) InsertMany(ctx context.Context, variations []*models.Variation) error {
	args := m.Called(ctx, variations)
	return args.Error(0)
}

func (m *MockVariationRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Variation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variation), args.Error(1)
}

func (m *MockVariationRepository) ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.Variation, error) {
	args := m.Called(ctx, tenantID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Variation), args.Error(1)
}

func (m *MockVariationRepository) ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]repositories.ChildNameRef, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ChildNameRef), args.Error(1)
}

func (m *MockVariationRepository) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationUpdate) error {
	args := m.Called(ctx, tenantID, id, upd)
	return args.Error(0)
}

func (m *MockVariationRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockComboMealRepository struct {
	mock.Mock
}

func (m *MockComboMealRepository) Create(ctx context.Context, combo *models.ComboMeal) error {
	args := m.Called(ctx, combo)
	return args.Error(0)
}

func (m *MockComboMealRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ComboMeal, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComboMeal), args.Error(1)
}

func (m *MockComboMealRepository) FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.ComboMeal, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComboMeal), args.Error(1)
}

func (m *MockComboMealRepository) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.ComboMeal, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ComboMeal), args.Error(1)
}

func (m *MockComboMealRepository) Update(ctx context.Context, combo *models.ComboMeal) error {
	args := m.Called(ctx, combo)
	return args.Error(0)
}

func (m *MockComboMealRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockComboMealRepository) ReplaceItems(ctx context.Context, tenantID, comboID uuid.UUID, items []models.ComboMealItem) error {
	args := m.Called(ctx, tenantID, comboID, items)
	return args.Error(0)
}

func (m *MockComboMealRepository) ListItems(ctx context.Context, tenantID, comboID uuid.UUID) ([]models.ComboMealItem, error) {
	args := m.Called(ctx, tenantID, comboID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComboMealItem), args.Error(1)
}

func (m *MockComboMealRepository) CountByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, foodItemID)
	return args.Int(0), args.Error(1)
}

type MockFoodItemImageRepository struct {
	mock.Mock
}

func (m *MockFoodItemImageRepository) Create(ctx context.Context, image *models.FoodItemImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockFoodItemImageRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItemImage, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItemImage), args.Error(1)
}

func (m *MockFoodItemImageRepository) ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.FoodItemImage, error) {
	args := m.Called(ctx, tenantID, foodItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FoodItemImage), args.Error(1)
}

func (m *MockFoodItemImageRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type MockTaskEnqueuer struct {
	mock.Mock
}

func (m *MockTaskEnqueuer) EnqueueMenuCascade(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	args := m.Called(ctx, tenantID, branchID, menuType, active)
	return args.Error(0)
}

func (m *MockTaskEnqueuer) EnqueueItemCascade(ctx context.Context, tenantID, branchID, foodItemID uuid.UUID, active bool) error {
	args := m.Called(ctx, tenantID, branchID, foodItemID, active)
	return args.Error(0)
}

func (m *MockTaskEnqueuer) EnqueueTranslation(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error {
	args := m.Called(ctx, tenantID, entityType, entityID)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) SwallowedError(entityType string, entityID uuid.UUID, errKind string, err error) {
	m.Called(entityType, entityID, errKind, err)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.FoodItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockCacheService) SetFoodItem(ctx context.Context, tenantID uuid.UUID, item *models.FoodItem, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCacheService) SetCategory(ctx context.Context, tenantID uuid.UUID, category *models.Category, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, category, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Error(0)
}

func (m *MockCacheService) GetMenus(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Menu), args.Error(1)
}

func (m *MockCacheService) SetMenus(ctx context.Context, tenantID, branchID uuid.UUID, menus []*models.Menu, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, branchID, menus, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMenus(ctx context.Context, tenantID, branchID uuid.UUID) error {
	args := m.Called(ctx, tenantID, branchID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
