package services

import (
	"context"
	"errors"
	"testing"

	"menucraft/internal/common"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CatalogImportServiceTestSuite struct {
	suite.Suite
	categoryRepo       *MockCategoryRepository
	foodItemRepo       *MockFoodItemRepository
	assignmentRepo     *MockMenuAssignmentRepository
	addOnGroupRepo     *MockAddOnGroupRepository
	addOnRepo          *MockAddOnRepository
	variationGroupRepo *MockVariationGroupRepository
	variationRepo      *MockVariationRepository
	enqueuer           *MockTaskEnqueuer
	recorder           *MockRecorder
	service            CatalogImportService
	ctx                context.Context
	tenantID           uuid.UUID
	branchID           uuid.UUID
}

func (suite *CatalogImportServiceTestSuite) SetupTest() {
	suite.categoryRepo = new(MockCategoryRepository)
	suite.foodItemRepo = new(MockFoodItemRepository)
	suite.assignmentRepo = new(MockMenuAssignmentRepository)
	suite.addOnGroupRepo = new(MockAddOnGroupRepository)
	suite.addOnRepo = new(MockAddOnRepository)
	suite.variationGroupRepo = new(MockVariationGroupRepository)
	suite.variationRepo = new(MockVariationRepository)
	suite.enqueuer = new(MockTaskEnqueuer)
	suite.recorder = new(MockRecorder)
	suite.service = NewCatalogImportService(suite.categoryRepo, suite.foodItemRepo, suite.assignmentRepo,
		suite.addOnGroupRepo, suite.addOnRepo, suite.variationGroupRepo, suite.variationRepo,
		suite.enqueuer, suite.recorder, 5000)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.branchID = uuid.New()
}

func (suite *CatalogImportServiceTestSuite) TearDownTest() {
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.foodItemRepo.AssertExpectations(suite.T())
	suite.assignmentRepo.AssertExpectations(suite.T())
	suite.addOnGroupRepo.AssertExpectations(suite.T())
	suite.addOnRepo.AssertExpectations(suite.T())
	suite.variationGroupRepo.AssertExpectations(suite.T())
	suite.variationRepo.AssertExpectations(suite.T())
	suite.enqueuer.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func (suite *CatalogImportServiceTestSuite) snapshotFoodItems(categories []repositories.NameRef, items []repositories.NameRef) {
	suite.categoryRepo.On("ListNames", suite.ctx, suite.tenantID, (*uuid.UUID)(nil)).Return(categories, nil)
	suite.foodItemRepo.On("ListNames", suite.ctx, suite.tenantID, suite.branchID).Return(items, nil)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_ForwardReferenceCreatesCategory() {
	sheet := []byte("category_name,item_name,base_price,menu_types\n" +
		"Street Food,Vada Pav,40,lunch|dinner\n")
	suite.snapshotFoodItems([]repositories.NameRef{}, []repositories.NameRef{})

	suite.categoryRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(drafts []*models.Category) bool {
		return len(drafts) == 1 && drafts[0].Name == "Street Food" && drafts[0].TenantID == suite.tenantID
	})).Return(nil)
	suite.foodItemRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(items []*models.FoodItem) bool {
		return len(items) == 1 && items[0].Name == "Vada Pav" && items[0].BasePrice == 40 &&
			items[0].BranchID == suite.branchID && items[0].StockMode == models.StockModeUnlimited
	})).Return(nil)
	suite.assignmentRepo.On("Assign", suite.ctx, mock.MatchedBy(func(a *models.MenuAssignment) bool {
		return a.MenuType == "lunch"
	})).Return(nil)
	suite.assignmentRepo.On("Assign", suite.ctx, mock.MatchedBy(func(a *models.MenuAssignment) bool {
		return a.MenuType == "dinner"
	})).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeFoodItem,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	result, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(1, result.TotalRows)
	suite.Equal(1, result.CreatedCount)
	suite.Equal(1, result.SuccessCount)
	suite.Equal(0, result.FailedCount)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_BadRowsDoNotSinkTheRest() {
	drinksID := uuid.New()
	sheet := []byte("category_name,item_name,base_price\n" +
		"Drinks,Lassi,notaprice\n" +
		"Drinks,,30\n" +
		"Drinks,Chai,15\n")
	suite.snapshotFoodItems([]repositories.NameRef{{ID: drinksID, Name: "Drinks"}}, []repositories.NameRef{})

	suite.foodItemRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(items []*models.FoodItem) bool {
		return len(items) == 1 && items[0].Name == "Chai" && items[0].CategoryID == drinksID
	})).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeFoodItem,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	result, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(3, result.TotalRows)
	suite.Equal(1, result.SuccessCount)
	suite.Equal(2, result.FailedCount)
	suite.Require().Len(result.Errors, 2)
	suite.Equal(1, result.Errors[0].RowNumber)
	suite.Equal(2, result.Errors[1].RowNumber)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_DuplicateSiblingRowsCreateThenUpdate() {
	drinksID := uuid.New()
	sheet := []byte("category_name,item_name,base_price\n" +
		"Drinks,Chai,15\n" +
		"Drinks,chai,18\n")
	suite.snapshotFoodItems([]repositories.NameRef{{ID: drinksID, Name: "Drinks"}}, []repositories.NameRef{})

	suite.foodItemRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(items []*models.FoodItem) bool {
		return len(items) == 1 && items[0].Name == "Chai" && items[0].BasePrice == 15
	})).Return(nil)
	suite.foodItemRepo.On("UpdateFields", suite.ctx, suite.tenantID, mock.AnythingOfType("uuid.UUID"),
		mock.MatchedBy(func(upd *models.FoodItemUpdate) bool {
			return upd.BasePrice != nil && *upd.BasePrice == 18
		})).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeFoodItem,
		mock.AnythingOfType("uuid.UUID")).Return(nil).Times(2)

	result, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(1, result.CreatedCount)
	suite.Equal(1, result.UpdatedCount)
	suite.Equal(2, result.SuccessCount)
	suite.Equal(0, result.FailedCount)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_RerunUpdatesInsteadOfDuplicating() {
	drinksID, chaiID := uuid.New(), uuid.New()
	sheet := []byte("category_name,item_name,base_price\n" +
		"Drinks,Chai,20\n")
	suite.snapshotFoodItems(
		[]repositories.NameRef{{ID: drinksID, Name: "Drinks"}},
		[]repositories.NameRef{{ID: chaiID, Name: "Chai"}})

	suite.foodItemRepo.On("UpdateFields", suite.ctx, suite.tenantID, chaiID,
		mock.AnythingOfType("*models.FoodItemUpdate")).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeFoodItem, chaiID).Return(nil)

	result, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(0, result.CreatedCount)
	suite.Equal(1, result.UpdatedCount)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_BatchFailureFallsBackPerRow() {
	drinksID := uuid.New()
	sheet := []byte("category_name,item_name,base_price\n" +
		"Drinks,Chai,15\n" +
		"Drinks,Lassi,30\n")
	suite.snapshotFoodItems([]repositories.NameRef{{ID: drinksID, Name: "Drinks"}}, []repositories.NameRef{})

	suite.foodItemRepo.On("InsertMany", suite.ctx, mock.AnythingOfType("[]*models.FoodItem")).
		Return(errors.New("batch aborted"))
	suite.foodItemRepo.On("Create", suite.ctx, mock.MatchedBy(func(item *models.FoodItem) bool {
		return item.Name == "Chai"
	})).Return(nil)
	suite.foodItemRepo.On("Create", suite.ctx, mock.MatchedBy(func(item *models.FoodItem) bool {
		return item.Name == "Lassi"
	})).Return(&pgconnUniqueViolation)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeFoodItem,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	result, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(1, result.CreatedCount)
	suite.Equal(1, result.FailedCount)
	suite.Require().Len(result.Errors, 1)
	suite.Equal(2, result.Errors[0].RowNumber)
	suite.Contains(result.Errors[0].Message, "already exists")
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_UnreadableSheet() {
	_, err := suite.service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, []byte("a,\"b\nc"))

	var validation *common.ValidationError
	suite.ErrorAs(err, &validation)
	suite.Equal("file", validation.Field)
}

func (suite *CatalogImportServiceTestSuite) TestImportAddOns_SameNameInDifferentGroups() {
	sizesID, milksID := uuid.New(), uuid.New()
	largeInSizes := uuid.New()
	sheet := []byte("group_name,addon_name,price\n" +
		"Sizes,Large,10\n" +
		"Milks,Large,12\n")
	suite.addOnGroupRepo.On("ListNames", suite.ctx, suite.tenantID, (*uuid.UUID)(nil)).Return(
		[]repositories.NameRef{{ID: sizesID, Name: "Sizes"}, {ID: milksID, Name: "Milks"}}, nil)
	suite.addOnRepo.On("ListNameRefs", suite.ctx, suite.tenantID).Return(
		[]repositories.ChildNameRef{{ID: largeInSizes, ParentID: sizesID, Name: "Large"}}, nil)

	// "Large" exists under Sizes so that row updates; under Milks it is new.
	suite.addOnRepo.On("UpdateFields", suite.ctx, suite.tenantID, largeInSizes,
		mock.AnythingOfType("*models.AddOnUpdate")).Return(nil)
	suite.addOnRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(addons []*models.AddOn) bool {
		return len(addons) == 1 && addons[0].GroupID == milksID && addons[0].Name == "Large"
	})).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeAddOn,
		mock.AnythingOfType("uuid.UUID")).Return(nil).Times(2)

	result, err := suite.service.ImportAddOns(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(1, result.CreatedCount)
	suite.Equal(1, result.UpdatedCount)
	suite.Equal(0, result.FailedCount)
}

func (suite *CatalogImportServiceTestSuite) TestImportVariations_CreatesGroupAndVariation() {
	sheet := []byte("group_name,variation_name,price_delta\n" +
		"Spice Level,Extra Hot,0\n")
	suite.variationGroupRepo.On("ListNames", suite.ctx, suite.tenantID, (*uuid.UUID)(nil)).
		Return([]repositories.NameRef{}, nil)
	suite.variationRepo.On("ListNameRefs", suite.ctx, suite.tenantID).
		Return([]repositories.ChildNameRef{}, nil)
	suite.variationGroupRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(groups []*models.VariationGroup) bool {
		return len(groups) == 1 && groups[0].Name == "Spice Level"
	})).Return(nil)
	suite.variationRepo.On("InsertMany", suite.ctx, mock.MatchedBy(func(variations []*models.Variation) bool {
		return len(variations) == 1 && variations[0].Name == "Extra Hot"
	})).Return(nil)
	suite.enqueuer.On("EnqueueTranslation", suite.ctx, suite.tenantID, models.EntityTypeVariation,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	result, err := suite.service.ImportVariations(suite.ctx, suite.tenantID, suite.branchID, sheet)

	suite.NoError(err)
	suite.Equal(1, result.CreatedCount)
	suite.Equal(1, result.SuccessCount)
}

func (suite *CatalogImportServiceTestSuite) TestImportFoodItems_RejectsSheetOverRowLimit() {
	service := NewCatalogImportService(suite.categoryRepo, suite.foodItemRepo, suite.assignmentRepo,
		suite.addOnGroupRepo, suite.addOnRepo, suite.variationGroupRepo, suite.variationRepo,
		suite.enqueuer, suite.recorder, 2)
	sheet := []byte("category_name,item_name,base_price\n" +
		"Drinks,Chai,15\n" +
		"Drinks,Lassi,30\n" +
		"Drinks,Coffee,25\n")

	result, err := service.ImportFoodItems(suite.ctx, suite.tenantID, suite.branchID, sheet)

	var validationErr *common.ValidationError
	suite.ErrorAs(err, &validationErr)
	suite.Equal("file", validationErr.Field)
	suite.Contains(validationErr.Reason, "limit is 2")
	suite.Nil(result)
	suite.categoryRepo.AssertNotCalled(suite.T(), "ListNames", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogImportServiceTestSuite))
}
