package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
	"github.com/vkatkov/gomarket/internal/usecase/review"
)

// MockReviewRepository is a mock implementation of domain.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCache is a mock implementation of review.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetReviewsList(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockCache) SetReviewsList(ctx context.Context, productID uuid.UUID, limit, offset int, reviews []*domain.Review) error {
	args := m.Called(ctx, productID, limit, offset, reviews)
	return args.Error(0)
}

func (m *MockCache) InvalidateAllProductCache(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of review.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newReviewHandler(repo *MockReviewRepository, cache *MockCache, publisher *MockEventPublisher) *ReviewHandler {
	log := logger.New("test")
	service := review.NewService(repo, cache, publisher, log)
	return NewReviewHandler(service, log)
}

func TestReviewHandler_Create_Success(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	mockCache := new(MockCache)
	mockPublisher := new(MockEventPublisher)
	handler := newReviewHandler(mockRepo, mockCache, mockPublisher)

	userID := uuid.New()
	productID := uuid.New()

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.ProductID == productID && r.UserID == userID && r.Grade == 5
	})).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, productID).Return(nil)
	mockPublisher.On("Publish", mock.Anything, review.Subject, mock.Anything).Return(nil)

	requestBody := CreateReviewRequest{
		ProductID: productID.String(),
		Grade:     5,
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestReviewHandler_Create_GradeOutOfRange(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	handler := newReviewHandler(mockRepo, new(MockCache), new(MockEventPublisher))

	requestBody := CreateReviewRequest{
		ProductID: uuid.New().String(),
		Grade:     6,
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewReader(bodyBytes))
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestReviewHandler_Create_ProductNotFound(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	handler := newReviewHandler(mockRepo, new(MockCache), new(MockEventPublisher))

	productID := uuid.New()
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	requestBody := CreateReviewRequest{
		ProductID: productID.String(),
		Grade:     4,
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewReader(bodyBytes))
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Create_MissingUserHeader(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	handler := newReviewHandler(mockRepo, new(MockCache), new(MockEventPublisher))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestReviewHandler_GetByProductID_Success(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	mockCache := new(MockCache)
	handler := newReviewHandler(mockRepo, mockCache, new(MockEventPublisher))

	productID := uuid.New()
	reviews := []*domain.Review{
		{ID: uuid.New(), ProductID: productID, Grade: 5},
	}

	mockCache.On("GetReviewsList", mock.Anything, productID, 20, 0).Return(nil, domain.ErrNotFound)
	mockRepo.On("ListByProduct", mock.Anything, productID, 20, 0).Return(reviews, nil)
	mockRepo.On("CountByProduct", mock.Anything, productID).Return(1, nil)
	mockCache.On("SetReviewsList", mock.Anything, productID, 20, 0, reviews).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String()+"/reviews", nil)
	req = withURLParam(req, "id", productID.String())
	w := httptest.NewRecorder()

	handler.GetByProductID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response, "pagination")
}

func TestReviewHandler_Delete_WrongUser(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	handler := newReviewHandler(mockRepo, new(MockCache), new(MockEventPublisher))

	reviewID := uuid.New()
	author := uuid.New()
	other := uuid.New()

	mockRepo.On("GetByID", mock.Anything, reviewID).Return(&domain.Review{
		ID:     reviewID,
		UserID: author,
		Grade:  3,
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+reviewID.String(), nil)
	req = withURLParam(req, "id", reviewID.String())
	req.Header.Set("X-User-ID", other.String())
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestReviewHandler_Delete_Success(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	mockCache := new(MockCache)
	mockPublisher := new(MockEventPublisher)
	handler := newReviewHandler(mockRepo, mockCache, mockPublisher)

	reviewID := uuid.New()
	productID := uuid.New()
	userID := uuid.New()

	mockRepo.On("GetByID", mock.Anything, reviewID).Return(&domain.Review{
		ID:        reviewID,
		ProductID: productID,
		UserID:    userID,
		Grade:     3,
	}, nil)
	mockRepo.On("Delete", mock.Anything, reviewID).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, productID).Return(nil)
	mockPublisher.On("Publish", mock.Anything, review.Subject, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+reviewID.String(), nil)
	req = withURLParam(req, "id", reviewID.String())
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
