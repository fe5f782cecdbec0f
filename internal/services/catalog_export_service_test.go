package services

import (
	"context"
	"strings"
	"testing"

	"menucraft/internal/importer"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CatalogExportServiceTestSuite struct {
	suite.Suite
	categoryRepo       *MockCategoryRepository
	foodItemRepo       *MockFoodItemRepository
	assignmentRepo     *MockMenuAssignmentRepository
	addOnGroupRepo     *MockAddOnGroupRepository
	addOnRepo          *MockAddOnRepository
	variationGroupRepo *MockVariationGroupRepository
	variationRepo      *MockVariationRepository
	service            CatalogExportService
	ctx                context.Context
	tenantID           uuid.UUID
	branchID           uuid.UUID
}

func (suite *CatalogExportServiceTestSuite) SetupTest() {
	suite.categoryRepo = new(MockCategoryRepository)
	suite.foodItemRepo = new(MockFoodItemRepository)
	suite.assignmentRepo = new(MockMenuAssignmentRepository)
	suite.addOnGroupRepo = new(MockAddOnGroupRepository)
	suite.addOnRepo = new(MockAddOnRepository)
	suite.variationGroupRepo = new(MockVariationGroupRepository)
	suite.variationRepo = new(MockVariationRepository)
	suite.service = NewCatalogExportService(suite.categoryRepo, suite.foodItemRepo, suite.assignmentRepo,
		suite.addOnGroupRepo, suite.addOnRepo, suite.variationGroupRepo, suite.variationRepo)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.branchID = uuid.New()
}

func (suite *CatalogExportServiceTestSuite) TearDownTest() {
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.foodItemRepo.AssertExpectations(suite.T())
	suite.assignmentRepo.AssertExpectations(suite.T())
	suite.addOnGroupRepo.AssertExpectations(suite.T())
	suite.addOnRepo.AssertExpectations(suite.T())
	suite.variationGroupRepo.AssertExpectations(suite.T())
	suite.variationRepo.AssertExpectations(suite.T())
}

func TestCatalogExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogExportServiceTestSuite))
}

func (suite *CatalogExportServiceTestSuite) TestExportFoodItems_SheetRoundTripsThroughImport() {
	categoryID := uuid.New()
	chai := &models.FoodItem{
		ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, CategoryID: categoryID,
		Name: "Chai", Description: "Masala tea", BasePrice: 15.5, StockMode: models.StockModeUnlimited,
		IsActive: true,
	}
	dosa := &models.FoodItem{
		ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, CategoryID: categoryID,
		Name: "Dosa", BasePrice: 60, StockMode: models.StockModeDaily,
	}
	suite.categoryRepo.On("ListNames", suite.ctx, suite.tenantID, (*uuid.UUID)(nil)).
		Return([]repositories.NameRef{{ID: categoryID, Name: "South Indian"}}, nil)
	suite.foodItemRepo.On("List", suite.ctx, suite.tenantID, suite.branchID, exportPageSize, 0).
		Return([]*models.FoodItem{chai, dosa}, nil)
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, chai.ID).
		Return([]*models.MenuAssignment{
			{TenantID: suite.tenantID, MenuType: "lunch", FoodItemID: chai.ID},
			{TenantID: suite.tenantID, MenuType: "breakfast", FoodItemID: chai.ID},
		}, nil)
	suite.assignmentRepo.On("ListByFoodItem", suite.ctx, suite.tenantID, dosa.ID).
		Return([]*models.MenuAssignment{}, nil)

	result, err := suite.service.ExportFoodItems(suite.ctx, suite.tenantID, suite.branchID)

	suite.NoError(err)
	suite.Equal(2, result.RecordsExported)
	suite.Contains(result.FileName, "food_items_")

	lines := strings.Split(strings.TrimRight(result.FileContent, "\n"), "\n")
	suite.Len(lines, 3)
	suite.Equal("category_name,item_name,description,base_price,stock_mode,is_active,menu_types", lines[0])
	suite.Equal("South Indian,Chai,Masala tea,15.5,unlimited,true,breakfast|lunch", lines[1])
	suite.Equal("South Indian,Dosa,,60,daily,false,", lines[2])

	// The generated sheet must parse cleanly under the import schema.
	target := newFoodItemSheetTarget(suite.tenantID, suite.branchID, suite.categoryRepo,
		suite.foodItemRepo, suite.assignmentRepo)
	rows, parseErr := importer.Parse([]byte(result.FileContent), target.Schema())
	suite.NoError(parseErr)
	suite.Len(rows, 2)
	for _, row := range rows {
		suite.Empty(row.Errs)
	}
}

func (suite *CatalogExportServiceTestSuite) TestExportAddOns_GroupColumnsRepeatPerRow() {
	sizes := &models.AddOnGroup{
		ID: uuid.New(), TenantID: suite.tenantID, Name: "Sizes",
		SelectionMode: models.SelectionModeSingle, MaxSelect: 1,
	}
	suite.addOnGroupRepo.On("List", suite.ctx, suite.tenantID, exportPageSize, 0).
		Return([]*models.AddOnGroup{sizes}, nil)
	suite.addOnRepo.On("ListByGroup", suite.ctx, suite.tenantID, sizes.ID).
		Return([]*models.AddOn{
			{ID: uuid.New(), GroupID: sizes.ID, Name: "Large", Price: 20, IsActive: true},
			{ID: uuid.New(), GroupID: sizes.ID, Name: "Small", Price: 0, IsActive: true},
		}, nil)

	result, err := suite.service.ExportAddOns(suite.ctx, suite.tenantID)

	suite.NoError(err)
	suite.Equal(2, result.RecordsExported)
	lines := strings.Split(strings.TrimRight(result.FileContent, "\n"), "\n")
	suite.Equal("group_name,addon_name,price,selection_mode,max_select,is_active", lines[0])
	suite.Equal("Sizes,Large,20,single,1,true", lines[1])
	suite.Equal("Sizes,Small,0,single,1,true", lines[2])
}

func (suite *CatalogExportServiceTestSuite) TestExportVariations_EmptyCatalog() {
	suite.variationGroupRepo.On("List", suite.ctx, suite.tenantID, exportPageSize, 0).
		Return([]*models.VariationGroup{}, nil)

	result, err := suite.service.ExportVariations(suite.ctx, suite.tenantID)

	suite.NoError(err)
	suite.Equal(0, result.RecordsExported)
	suite.Equal("group_name,variation_name,price_delta,is_active\n", result.FileContent)
}
