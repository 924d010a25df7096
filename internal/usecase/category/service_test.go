package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := NewService(mockRepo, logger.New("test"))

	category := &domain.Category{Name: "Electronics"}

	mockRepo.On("Create", mock.Anything, category).Return(nil)

	err := service.Create(context.Background(), category)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_ParentNotFound(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := NewService(mockRepo, logger.New("test"))

	parentID := uuid.New()
	category := &domain.Category{Name: "Laptops", ParentID: &parentID}

	mockRepo.On("GetByID", mock.Anything, parentID).Return(nil, domain.ErrNotFound)

	err := service.Create(context.Background(), category)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Update_SelfParentRejected(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := NewService(mockRepo, logger.New("test"))

	id := uuid.New()
	category := &domain.Category{ID: id, Name: "Electronics", ParentID: &id}

	mockRepo.On("GetByID", mock.Anything, id).
		Return(&domain.Category{ID: id, Name: "Electronics", IsActive: true}, nil)

	err := service.Update(context.Background(), category)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_Update_ValidParent(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := NewService(mockRepo, logger.New("test"))

	id := uuid.New()
	parentID := uuid.New()
	category := &domain.Category{ID: id, Name: "Laptops", ParentID: &parentID}

	mockRepo.On("GetByID", mock.Anything, id).
		Return(&domain.Category{ID: id, Name: "Laptops", IsActive: true}, nil)
	mockRepo.On("GetByID", mock.Anything, parentID).
		Return(&domain.Category{ID: parentID, Name: "Electronics", IsActive: true}, nil)
	mockRepo.On("Update", mock.Anything, category).Return(nil)

	err := service.Update(context.Background(), category)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := NewService(mockRepo, logger.New("test"))

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	err := service.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Delete")
}
