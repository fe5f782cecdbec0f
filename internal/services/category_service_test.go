package services

import (
	"context"
	"testing"

	"menucraft/internal/common"
	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	categoryRepo *MockCategoryRepository
	foodItemRepo *MockFoodItemRepository
	cacheService *MockCacheService
	enqueuer     *MockTaskEnqueuer
	recorder     *MockRecorder
	service      CategoryService
	ctx          context.Context
	tenantID     uuid.UUID
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.categoryRepo = new(MockCategoryRepository)
	suite.foodItemRepo = new(MockFoodItemRepository)
	suite.cacheService = new(MockCacheService)
	suite.enqueuer = new(MockTaskEnqueuer)
	suite.recorder = new(MockRecorder)
	suite.service = NewCategoryService(suite.categoryRepo, suite.foodItemRepo, suite.cacheService,
		suite.enqueuer, suite.recorder)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
}

func (suite *CategoryServiceTestSuite) TearDownTest() {
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.foodItemRepo.AssertExpectations(suite.T())
	suite.cacheService.AssertExpectations(suite.T())
	suite.enqueuer.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreate_Success() {
	category := &models.Category{Name: "Drinks", CategoryType: "food"}
	suite.categoryRepo.On("FindByNaturalKey", suite.ctx, suite.tenantID, (*uuid.UUID)(nil), "Drinks").Return(nil, nil)
	suite.categoryRepo.On("Create", suite.ctx, category).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeCategory,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	err := suite.service.Create(suite.ctx, suite.tenantID, category)

	suite.NoError(err)
	suite.Equal(suite.tenantID, category.TenantID)
	suite.NotEqual(uuid.Nil, category.ID)
}

func (suite *CategoryServiceTestSuite) TestCreate_EmptyName() {
	err := suite.service.Create(suite.ctx, suite.tenantID, &models.Category{})

	var validation *common.ValidationError
	suite.ErrorAs(err, &validation)
	suite.Equal("name", validation.Field)
}

func (suite *CategoryServiceTestSuite) TestCreate_DuplicateName() {
	existing := &models.Category{ID: uuid.New(), Name: "Drinks"}
	suite.categoryRepo.On("FindByNaturalKey", suite.ctx, suite.tenantID, (*uuid.UUID)(nil), "Drinks").
		Return(existing, nil)

	err := suite.service.Create(suite.ctx, suite.tenantID, &models.Category{Name: "Drinks"})

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Equal("Drinks", conflict.Name)
}

func (suite *CategoryServiceTestSuite) TestUpdate_RejectsSelfParent() {
	id := uuid.New()
	category := &models.Category{ID: id, TenantID: suite.tenantID, Name: "Drinks"}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, id).Return(category, nil)

	err := suite.service.Update(suite.ctx, suite.tenantID, id, &models.CategoryUpdate{ParentID: &id})

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
}

func (suite *CategoryServiceTestSuite) TestUpdate_RejectsReparentingCycle() {
	// B's parent is A; reparenting A under B would close the loop.
	aID, bID := uuid.New(), uuid.New()
	a := &models.Category{ID: aID, TenantID: suite.tenantID, Name: "A"}
	b := &models.Category{ID: bID, TenantID: suite.tenantID, Name: "B", ParentID: &aID}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, aID).Return(a, nil)
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, bID).Return(b, nil)

	err := suite.service.Update(suite.ctx, suite.tenantID, aID, &models.CategoryUpdate{ParentID: &bID})

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Contains(conflict.Reason, "cycle")
}

func (suite *CategoryServiceTestSuite) TestUpdate_AllowsDeepValidReparent() {
	// root <- mid, moving leaf under mid touches no ancestor of leaf.
	rootID, midID, leafID := uuid.New(), uuid.New(), uuid.New()
	root := &models.Category{ID: rootID, TenantID: suite.tenantID, Name: "Root"}
	mid := &models.Category{ID: midID, TenantID: suite.tenantID, Name: "Mid", ParentID: &rootID}
	leaf := &models.Category{ID: leafID, TenantID: suite.tenantID, Name: "Leaf"}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, leafID).Return(leaf, nil)
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, midID).Return(mid, nil)
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, rootID).Return(root, nil)
	suite.categoryRepo.On("UpdateFields", suite.ctx, suite.tenantID, leafID,
		mock.AnythingOfType("*models.CategoryUpdate")).Return(nil)
	suite.cacheService.On("DeleteCategory", suite.ctx, suite.tenantID, leafID).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeCategory, leafID).Return(nil)

	err := suite.service.Update(suite.ctx, suite.tenantID, leafID, &models.CategoryUpdate{ParentID: &midID})

	suite.NoError(err)
}

func (suite *CategoryServiceTestSuite) TestDelete_RefusedWhileItemsRemain() {
	id := uuid.New()
	category := &models.Category{ID: id, TenantID: suite.tenantID, Name: "Drinks"}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, id).Return(category, nil)
	suite.foodItemRepo.On("CountByCategory", suite.ctx, suite.tenantID, id).Return(3, nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, id)

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Contains(conflict.Reason, "3 food items")
}

func (suite *CategoryServiceTestSuite) TestDelete_RefusedWhileSubcategoriesRemain() {
	id := uuid.New()
	category := &models.Category{ID: id, TenantID: suite.tenantID, Name: "Drinks"}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, id).Return(category, nil)
	suite.foodItemRepo.On("CountByCategory", suite.ctx, suite.tenantID, id).Return(0, nil)
	suite.categoryRepo.On("CountChildren", suite.ctx, suite.tenantID, id).Return(2, nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, id)

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Contains(conflict.Reason, "2 subcategories")
}

func (suite *CategoryServiceTestSuite) TestDelete_Success() {
	id := uuid.New()
	category := &models.Category{ID: id, TenantID: suite.tenantID, Name: "Drinks"}
	suite.categoryRepo.On("GetByID", suite.ctx, suite.tenantID, id).Return(category, nil)
	suite.foodItemRepo.On("CountByCategory", suite.ctx, suite.tenantID, id).Return(0, nil)
	suite.categoryRepo.On("CountChildren", suite.ctx, suite.tenantID, id).Return(0, nil)
	suite.categoryRepo.On("SoftDelete", suite.ctx, suite.tenantID, id).Return(nil)
	suite.cacheService.On("DeleteCategory", suite.ctx, suite.tenantID, id).Return(nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, id)

	suite.NoError(err)
}

func (suite *CategoryServiceTestSuite) TestGetByID_CacheHit() {
	id := uuid.New()
	cached := &models.Category{ID: id, TenantID: suite.tenantID, Name: "Drinks"}
	suite.cacheService.On("GetCategory", suite.ctx, suite.tenantID, id).Return(cached, nil)

	category, err := suite.service.GetByID(suite.ctx, suite.tenantID, id)

	suite.NoError(err)
	suite.Equal(cached, category)
	suite.categoryRepo.AssertNotCalled(suite.T(), "GetByID")
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
