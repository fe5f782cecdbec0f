package services

import (
	"context"
	"errors"
	"testing"

	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var pgconnUniqueViolation = pgconn.PgError{Code: "23505"}

type AvailabilityServiceTestSuite struct {
	suite.Suite
	menuRepo       *MockMenuRepository
	assignmentRepo *MockMenuAssignmentRepository
	foodItemRepo   *MockFoodItemRepository
	enqueuer       *MockTaskEnqueuer
	recorder       *MockRecorder
	service        AvailabilityService
	ctx            context.Context
	tenantID       uuid.UUID
	branchID       uuid.UUID
}

func (suite *AvailabilityServiceTestSuite) SetupTest() {
	suite.menuRepo = new(MockMenuRepository)
	suite.assignmentRepo = new(MockMenuAssignmentRepository)
	suite.foodItemRepo = new(MockFoodItemRepository)
	suite.enqueuer = new(MockTaskEnqueuer)
	suite.recorder = new(MockRecorder)
	suite.service = NewAvailabilityService(suite.menuRepo, suite.assignmentRepo, suite.foodItemRepo,
		suite.enqueuer, suite.recorder)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.branchID = uuid.New()
}

func (suite *AvailabilityServiceTestSuite) TearDownTest() {
	suite.menuRepo.AssertExpectations(suite.T())
	suite.assignmentRepo.AssertExpectations(suite.T())
	suite.foodItemRepo.AssertExpectations(suite.T())
	suite.enqueuer.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func (suite *AvailabilityServiceTestSuite) TestSetMenuActive_Success() {
	menu := &models.Menu{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, MenuType: "lunch"}
	suite.menuRepo.On("GetByType", suite.ctx, suite.tenantID, suite.branchID, "lunch").Return(menu, nil)
	suite.menuRepo.On("SetActive", suite.ctx, suite.tenantID, suite.branchID, "lunch", true).Return(nil)
	suite.enqueuer.On("EnqueueMenuCascade", suite.ctx, suite.tenantID, suite.branchID, "lunch", true).Return(nil)

	err := suite.service.SetMenuActive(suite.ctx, suite.tenantID, suite.branchID, "lunch", true)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestSetMenuActive_UnknownMenu() {
	suite.menuRepo.On("GetByType", suite.ctx, suite.tenantID, suite.branchID, "brunch").Return(nil, nil)

	err := suite.service.SetMenuActive(suite.ctx, suite.tenantID, suite.branchID, "brunch", true)

	var notFound *common.ReferenceNotFoundError
	suite.ErrorAs(err, &notFound)
	suite.Equal(models.EntityTypeMenu, notFound.EntityType)
}

func (suite *AvailabilityServiceTestSuite) TestSetMenuActive_EnqueueFailureIsSwallowed() {
	menu := &models.Menu{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, MenuType: "dinner"}
	enqueueErr := errors.New("redis down")
	suite.menuRepo.On("GetByType", suite.ctx, suite.tenantID, suite.branchID, "dinner").Return(menu, nil)
	suite.menuRepo.On("SetActive", suite.ctx, suite.tenantID, suite.branchID, "dinner", false).Return(nil)
	suite.enqueuer.On("EnqueueMenuCascade", suite.ctx, suite.tenantID, suite.branchID, "dinner", false).Return(enqueueErr)
	suite.recorder.On("SwallowedError", models.EntityTypeMenu, menu.ID, events.KindEnqueue, enqueueErr).Return()

	err := suite.service.SetMenuActive(suite.ctx, suite.tenantID, suite.branchID, "dinner", false)

	suite.NoError(err, "the flag flip already committed, queue trouble must not fail the request")
}

func (suite *AvailabilityServiceTestSuite) TestSetFoodItemActive_UnknownItem() {
	itemID := uuid.New()
	suite.foodItemRepo.On("GetByID", suite.ctx, suite.tenantID, itemID).Return(nil, pgx.ErrNoRows)

	err := suite.service.SetFoodItemActive(suite.ctx, suite.tenantID, suite.branchID, itemID, true)

	var notFound *common.ReferenceNotFoundError
	suite.ErrorAs(err, &notFound)
	suite.Equal(models.EntityTypeFoodItem, notFound.EntityType)
}

func (suite *AvailabilityServiceTestSuite) TestSetFoodItemActive_Success() {
	item := &models.FoodItem{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID}
	suite.foodItemRepo.On("GetByID", suite.ctx, suite.tenantID, item.ID).Return(item, nil)
	suite.foodItemRepo.On("SetActive", suite.ctx, suite.tenantID, item.ID, false).Return(nil)
	suite.enqueuer.On("EnqueueItemCascade", suite.ctx, suite.tenantID, suite.branchID, item.ID, false).Return(nil)

	err := suite.service.SetFoodItemActive(suite.ctx, suite.tenantID, suite.branchID, item.ID, false)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeMenu_ActivationActivatesAllItems() {
	item1, item2 := uuid.New(), uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: item1},
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: item2},
	}
	suite.assignmentRepo.On("ListByMenuTypeForBranch", suite.ctx, suite.tenantID, suite.branchID, "lunch").Return(assignments, nil)
	suite.foodItemRepo.On("BulkSetActive", suite.ctx, suite.tenantID, []uuid.UUID{item1, item2}, true).Return(nil)

	err := suite.service.CascadeMenu(suite.ctx, suite.tenantID, suite.branchID, "lunch", true)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeMenu_DeactivationSparesItemsOnOtherActiveMenus() {
	shared, exclusive := uuid.New(), uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: shared},
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: exclusive},
	}
	suite.assignmentRepo.On("ListByMenuTypeForBranch", suite.ctx, suite.tenantID, suite.branchID, "lunch").Return(assignments, nil)
	suite.assignmentRepo.On("CountActiveMenusByItems", suite.ctx, suite.tenantID, suite.branchID,
		[]uuid.UUID{shared, exclusive}).Return(map[uuid.UUID]int{shared: 1, exclusive: 0}, nil)
	suite.foodItemRepo.On("BulkSetActive", suite.ctx, suite.tenantID, []uuid.UUID{exclusive}, false).Return(nil)

	err := suite.service.CascadeMenu(suite.ctx, suite.tenantID, suite.branchID, "lunch", false)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeMenu_NoAssignments() {
	suite.assignmentRepo.On("ListByMenuTypeForBranch", suite.ctx, suite.tenantID, suite.branchID, "lunch").Return([]*models.MenuAssignment{}, nil)

	err := suite.service.CascadeMenu(suite.ctx, suite.tenantID, suite.branchID, "lunch", true)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeFoodItem_ActivationCreatesMissingMenu() {
	itemID := uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: itemID},
		{TenantID: suite.tenantID, MenuType: "dinner", FoodItemID: itemID},
	}
	lunch := &models.Menu{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, MenuType: "lunch"}
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, itemID).Return(assignments, nil)
	suite.assignmentRepo.On("CountActiveMenusByItems", suite.ctx, suite.tenantID, suite.branchID,
		[]uuid.UUID{itemID}).Return(map[uuid.UUID]int{}, nil)
	suite.menuRepo.On("GetByTypes", suite.ctx, suite.tenantID, suite.branchID, []string{"lunch", "dinner"}).
		Return([]*models.Menu{lunch}, nil)
	suite.menuRepo.On("Create", suite.ctx, mock.MatchedBy(func(m *models.Menu) bool {
		return m.MenuType == "dinner" && m.DisplayName == "Dinner" && m.IsActive && m.BranchID == suite.branchID
	})).Return(nil)
	suite.menuRepo.On("BulkSetActiveByTypes", suite.ctx, suite.tenantID, suite.branchID,
		[]string{"lunch", "dinner"}, true).Return(nil)

	err := suite.service.CascadeFoodItem(suite.ctx, suite.tenantID, suite.branchID, itemID, true)

	suite.NoError(err)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeFoodItem_ActivationToleratesConcurrentMenuCreate() {
	itemID := uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "dinner", FoodItemID: itemID},
	}
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, itemID).Return(assignments, nil)
	suite.assignmentRepo.On("CountActiveMenusByItems", suite.ctx, suite.tenantID, suite.branchID,
		[]uuid.UUID{itemID}).Return(map[uuid.UUID]int{}, nil)
	suite.menuRepo.On("GetByTypes", suite.ctx, suite.tenantID, suite.branchID, []string{"dinner"}).
		Return([]*models.Menu{}, nil)
	suite.menuRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Menu")).
		Return(&pgconnUniqueViolation)
	suite.menuRepo.On("BulkSetActiveByTypes", suite.ctx, suite.tenantID, suite.branchID,
		[]string{"dinner"}, true).Return(nil)

	err := suite.service.CascadeFoodItem(suite.ctx, suite.tenantID, suite.branchID, itemID, true)

	suite.NoError(err, "losing the create race means the menu already exists")
}

func (suite *AvailabilityServiceTestSuite) TestCascadeFoodItem_ActivationSkipsFanOutWhenAlreadyOnActiveMenu() {
	itemID := uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: itemID},
		{TenantID: suite.tenantID, MenuType: "dinner", FoodItemID: itemID},
	}
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, itemID).Return(assignments, nil)
	suite.assignmentRepo.On("CountActiveMenusByItems", suite.ctx, suite.tenantID, suite.branchID,
		[]uuid.UUID{itemID}).Return(map[uuid.UUID]int{itemID: 1}, nil)

	err := suite.service.CascadeFoodItem(suite.ctx, suite.tenantID, suite.branchID, itemID, true)

	suite.NoError(err)
	suite.menuRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	suite.menuRepo.AssertNotCalled(suite.T(), "BulkSetActiveByTypes",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AvailabilityServiceTestSuite) TestCascadeFoodItem_DeactivationSparesMenusWithOtherActiveItems() {
	itemID := uuid.New()
	assignments := []*models.MenuAssignment{
		{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: itemID},
		{TenantID: suite.tenantID, MenuType: "dinner", FoodItemID: itemID},
	}
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, itemID).Return(assignments, nil)
	suite.assignmentRepo.On("CountActiveItemsByMenus", suite.ctx, suite.tenantID, []string{"lunch", "dinner"}).
		Return(map[string]int{"lunch": 2, "dinner": 0}, nil)
	suite.menuRepo.On("BulkSetActiveByTypes", suite.ctx, suite.tenantID, suite.branchID,
		[]string{"dinner"}, false).Return(nil)

	err := suite.service.CascadeFoodItem(suite.ctx, suite.tenantID, suite.branchID, itemID, false)

	suite.NoError(err)
}

func TestAvailabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityServiceTestSuite))
}

func TestMenuDisplayName(t *testing.T) {
	assert.Equal(t, "Dinner", menuDisplayName("dinner"))
	assert.Equal(t, "Íftar", menuDisplayName("íftar"))
	assert.Equal(t, "早餐", menuDisplayName("早餐"))
	assert.Equal(t, "", menuDisplayName(""))
}
