package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"menucraft/internal/common"
	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FoodItemServiceTestSuite struct {
	suite.Suite
	foodItemRepo   *MockFoodItemRepository
	categoryRepo   *MockCategoryRepository
	comboMealRepo  *MockComboMealRepository
	addOnGroupRepo *MockAddOnGroupRepository
	imageRepo      *MockFoodItemImageRepository
	minioSvc       *MockMinioService
	cacheSvc       *MockCacheService
	enqueuer       *MockTaskEnqueuer
	recorder       *MockRecorder
	service        FoodItemService
	ctx            context.Context
	tenantID       uuid.UUID
	branchID       uuid.UUID
}

func (suite *FoodItemServiceTestSuite) SetupTest() {
	suite.foodItemRepo = new(MockFoodItemRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.comboMealRepo = new(MockComboMealRepository)
	suite.addOnGroupRepo = new(MockAddOnGroupRepository)
	suite.imageRepo = new(MockFoodItemImageRepository)
	suite.minioSvc = new(MockMinioService)
	suite.cacheSvc = new(MockCacheService)
	suite.enqueuer = new(MockTaskEnqueuer)
	suite.recorder = new(MockRecorder)
	suite.service = NewFoodItemService(suite.foodItemRepo, suite.categoryRepo, suite.comboMealRepo,
		suite.addOnGroupRepo, suite.imageRepo, suite.minioSvc, suite.cacheSvc, suite.enqueuer, suite.recorder)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.branchID = uuid.New()
}

func (suite *FoodItemServiceTestSuite) TearDownTest() {
	suite.foodItemRepo.AssertExpectations(suite.T())
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.comboMealRepo.AssertExpectations(suite.T())
	suite.addOnGroupRepo.AssertExpectations(suite.T())
	suite.imageRepo.AssertExpectations(suite.T())
	suite.minioSvc.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
	suite.enqueuer.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func TestFoodItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FoodItemServiceTestSuite))
}

func (suite *FoodItemServiceTestSuite) TestCreate_NegativePrice() {
	item := &models.FoodItem{Name: "Chai", BranchID: suite.branchID, BasePrice: -5}

	err := suite.service.Create(suite.ctx, suite.tenantID, item)

	var validationErr *common.ValidationError
	suite.ErrorAs(err, &validationErr)
	suite.Equal("base_price", validationErr.Field)
}

func (suite *FoodItemServiceTestSuite) TestDelete_RefusedWhileInComboMeals() {
	item := &models.FoodItem{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, Name: "Vada Pav"}
	suite.foodItemRepo.On("GetByID", suite.ctx, suite.tenantID, item.ID).Return(item, nil)
	suite.comboMealRepo.On("CountByFoodItem", suite.ctx, suite.tenantID, item.ID).Return(2, nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, item.ID)

	var conflict *common.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Contains(conflict.Error(), "2 combo meals")
	suite.foodItemRepo.AssertNotCalled(suite.T(), "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FoodItemServiceTestSuite) TestUploadImage_CreatesBucketObjectAndRecord() {
	item := &models.FoodItem{ID: uuid.New(), TenantID: suite.tenantID, BranchID: suite.branchID, Name: "Dosa"}
	bucket := imageBucket(suite.tenantID)
	reader := strings.NewReader("image bytes")
	objectKey := func(key string) bool {
		return strings.HasPrefix(key, item.ID.String()+"/") && strings.HasSuffix(key, ".png")
	}

	suite.foodItemRepo.On("GetByID", suite.ctx, suite.tenantID, item.ID).Return(item, nil)
	suite.minioSvc.On("EnsureBucketExists", suite.ctx, bucket).Return(nil)
	suite.minioSvc.On("UploadImage", suite.ctx, bucket, mock.MatchedBy(objectKey), reader, int64(11)).Return(nil)
	suite.imageRepo.On("Create", suite.ctx, mock.MatchedBy(func(image *models.FoodItemImage) bool {
		return image.TenantID == suite.tenantID && image.FoodItemID == item.ID && objectKey(image.ObjectKey)
	})).Return(nil)

	err := suite.service.UploadImage(suite.ctx, suite.tenantID, item.ID, "dosa.png", reader, 11, nil)

	suite.NoError(err)
}

func (suite *FoodItemServiceTestSuite) TestUploadImage_UnknownItem() {
	itemID := uuid.New()
	suite.foodItemRepo.On("GetByID", suite.ctx, suite.tenantID, itemID).Return(nil, pgx.ErrNoRows)

	err := suite.service.UploadImage(suite.ctx, suite.tenantID, itemID, "dosa.png", strings.NewReader("x"), 1, nil)

	var notFound *common.ReferenceNotFoundError
	suite.ErrorAs(err, &notFound)
	suite.minioSvc.AssertNotCalled(suite.T(), "EnsureBucketExists", mock.Anything, mock.Anything)
}

func (suite *FoodItemServiceTestSuite) TestGetImageURL_PresignsStoredObject() {
	image := &models.FoodItemImage{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		FoodItemID: uuid.New(),
		ObjectKey:  "item/abc.png",
	}
	suite.imageRepo.On("GetByID", suite.ctx, suite.tenantID, image.ID).Return(image, nil)
	suite.minioSvc.On("GetPresignedURL", imageBucket(suite.tenantID), image.ObjectKey, 15*time.Minute).
		Return("https://storage.example/item/abc.png", nil)

	url, err := suite.service.GetImageURL(suite.ctx, suite.tenantID, image.ID, 15*time.Minute)

	suite.NoError(err)
	suite.Equal("https://storage.example/item/abc.png", url)
}

func (suite *FoodItemServiceTestSuite) TestDeleteImage_RemovesObjectThenRecord() {
	image := &models.FoodItemImage{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		FoodItemID: uuid.New(),
		ObjectKey:  "item/abc.png",
	}
	suite.imageRepo.On("GetByID", suite.ctx, suite.tenantID, image.ID).Return(image, nil)
	suite.minioSvc.On("DeleteImage", suite.ctx, imageBucket(suite.tenantID), image.ObjectKey).Return(nil)
	suite.imageRepo.On("Delete", suite.ctx, suite.tenantID, image.ID).Return(nil)

	err := suite.service.DeleteImage(suite.ctx, suite.tenantID, image.ID)

	suite.NoError(err)
}
