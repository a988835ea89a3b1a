package services

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/common"
	"stockroom/internal/events"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type StorageServiceTestSuite struct {
	suite.Suite
	repo      *MockStorageRepository
	cache     *MockCacheService
	publisher *recordingPublisher
	service   StorageService
	ctx       context.Context
}

func (suite *StorageServiceTestSuite) SetupTest() {
	suite.repo = new(MockStorageRepository)
	suite.cache = new(MockCacheService)
	suite.publisher = &recordingPublisher{}
	suite.ctx = context.Background()
	suite.cache.On("DeleteDashboard", mock.Anything).Return(nil).Maybe()

	suite.service = NewStorageService(suite.repo, suite.cache, suite.publisher, zap.NewNop())
}

func (suite *StorageServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
}

func TestStorageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StorageServiceTestSuite))
}

func (suite *StorageServiceTestSuite) TestCreate_AppliesDefaultColor() {
	suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*models.Storage")).Return(nil).Once()

	storage := &models.Storage{Name: " Pantry ", Location: "Kitchen"}
	require.NoError(suite.T(), suite.service.Create(suite.ctx, storage))

	assert.Equal(suite.T(), "Pantry", storage.Name)
	assert.Equal(suite.T(), models.DefaultStorageColor, storage.Color)
	assert.NotEqual(suite.T(), uuid.Nil, storage.ID)
	assert.Equal(suite.T(), storage.CreatedAt, storage.UpdatedAt)
	assert.Equal(suite.T(), []events.Name{events.StorageCreated}, suite.publisher.names())
}

func (suite *StorageServiceTestSuite) TestCreate_BlankName() {
	err := suite.service.Create(suite.ctx, &models.Storage{Name: ""})

	var vErr *common.ValidationError
	require.True(suite.T(), errors.As(err, &vErr))
	assert.Equal(suite.T(), "name", vErr.Field)
	assert.Empty(suite.T(), suite.publisher.names())
}

func (suite *StorageServiceTestSuite) TestUpdate_NotFound() {
	storage := &models.Storage{ID: uuid.New(), Name: "Garage", Color: "#FF0000"}
	suite.repo.On("Update", suite.ctx, storage).Return(pgx.ErrNoRows).Once()

	err := suite.service.Update(suite.ctx, storage)

	var nf *common.NotFoundError
	require.True(suite.T(), errors.As(err, &nf))
	assert.Equal(suite.T(), storage.ID.String(), nf.ID)
	assert.Empty(suite.T(), suite.publisher.names())
}

func (suite *StorageServiceTestSuite) TestUpdate_EmitsStorageUpdated() {
	storage := &models.Storage{ID: uuid.New(), Name: "Garage", Color: "#FF0000"}
	suite.repo.On("Update", suite.ctx, storage).Return(nil).Once()

	require.NoError(suite.T(), suite.service.Update(suite.ctx, storage))
	assert.False(suite.T(), storage.UpdatedAt.IsZero())
	assert.Equal(suite.T(), []events.Name{events.StorageUpdated}, suite.publisher.names())
}

func (suite *StorageServiceTestSuite) TestDelete_InvalidatesCacheAndEmits() {
	id := uuid.New()
	suite.repo.On("Delete", suite.ctx, id).Return(nil).Once()
	suite.cache.On("InvalidateAllCache", suite.ctx).Return(errors.New("redis down")).Once()

	require.NoError(suite.T(), suite.service.Delete(suite.ctx, id))
	assert.Equal(suite.T(), []events.Name{events.StorageDeleted}, suite.publisher.names())
	suite.cache.AssertExpectations(suite.T())
}

func (suite *StorageServiceTestSuite) TestDelete_StoreFailure() {
	id := uuid.New()
	suite.repo.On("Delete", suite.ctx, id).Return(errors.New("connection reset")).Once()

	err := suite.service.Delete(suite.ctx, id)

	var pErr *common.PersistenceError
	assert.True(suite.T(), errors.As(err, &pErr))
	assert.Empty(suite.T(), suite.publisher.names())
}

func (suite *StorageServiceTestSuite) TestList() {
	want := []*models.StorageWithMetrics{{Storage: models.Storage{Name: "Pantry"}, ItemCount: 2}}
	suite.repo.On("List", suite.ctx, 50, 0).Return(want, nil).Once()

	got, err := suite.service.List(suite.ctx, 50, 0)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
}
