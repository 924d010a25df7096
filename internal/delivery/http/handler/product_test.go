package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
	"github.com/vkatkov/gomarket/internal/usecase/catalog"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, prod *domain.Product) error {
	args := m.Called(ctx, prod)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter, page domain.PageParams) ([]*domain.Product, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, prod *domain.Product) error {
	args := m.Called(ctx, prod)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, cat *domain.Category) error {
	args := m.Called(ctx, cat)
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

func (m *MockCategoryRepository) Update(ctx context.Context, cat *domain.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRatingCache is a mock implementation of catalog.RatingCache
type MockRatingCache struct {
	mock.Mock
}

func (m *MockRatingCache) GetProductRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRatingCache) SetProductRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error {
	args := m.Called(ctx, productID, rating)
	return args.Error(0)
}

func newProductHandler(products *MockProductRepository, categories *MockCategoryRepository) *ProductHandler {
	// Handler tests exercise the HTTP surface; the rating cache stays cold
	ratings := new(MockRatingCache)
	ratings.On("GetProductRating", mock.Anything, mock.Anything).Return(decimal.Zero, domain.ErrNotFound).Maybe()
	ratings.On("SetProductRating", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	log := logger.New("test")
	service := catalog.NewService(products, categories, ratings, log)
	return NewProductHandler(service, 20, log)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestProductHandler_List_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	products := []*domain.Product{
		{ID: uuid.New(), Name: "Wool socks", Price: decimal.RequireFromString("9.99")},
	}

	mockRepo.On("Count", mock.Anything, mock.Anything).Return(1, nil)
	mockRepo.On("List", mock.Anything, mock.Anything, domain.PageParams{Page: 1, PageSize: 20}).Return(products, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response, "data")
	assert.Contains(t, response, "pagination")
}

func TestProductHandler_List_FilterPassedThrough(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	categoryID := uuid.New()

	matchFilter := mock.MatchedBy(func(f domain.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.MinPrice != nil && f.MinPrice.Equal(decimal.RequireFromString("10")) &&
			f.InStock != nil && *f.InStock &&
			f.Search == "red -socks"
	})
	mockRepo.On("Count", mock.Anything, matchFilter).Return(0, nil)
	mockRepo.On("List", mock.Anything, matchFilter, mock.Anything).Return([]*domain.Product{}, nil)

	url := fmt.Sprintf("/api/v1/products?category_id=%s&min_price=10&in_stock=true&search=red+-socks&page=2&page_size=50", categoryID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_List_InvalidPriceRange(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=100&max_price=10", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "List")
	mockRepo.AssertNotCalled(t, "Count")

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "min_price")
}

func TestProductHandler_List_InvalidPageParams(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	for _, query := range []string{"page=0", "page_size=0", "page_size=101"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+query, nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
	mockRepo.AssertNotCalled(t, "List")
}

func TestProductHandler_List_MalformedFilterValue(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category_id=not-a-uuid", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "List")
}

func TestProductHandler_GetByID_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	productID := uuid.New()
	expected := &domain.Product{
		ID:     productID,
		Name:   "Wool socks",
		Price:  decimal.RequireFromString("9.99"),
		Rating: decimal.RequireFromString("4.5"),
	}

	mockRepo.On("GetByID", mock.Anything, productID).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	req = withURLParam(req, "id", productID.String())
	w := httptest.NewRecorder()

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	handler := newProductHandler(mockRepo, new(MockCategoryRepository))

	productID := uuid.New()
	mockRepo.On("GetByID", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	req = withURLParam(req, "id", productID.String())
	w := httptest.NewRecorder()

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_GetByID_InvalidUUID(t *testing.T) {
	handler := newProductHandler(new(MockProductRepository), new(MockCategoryRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/invalid-uuid", nil)
	req = withURLParam(req, "id", "invalid-uuid")
	w := httptest.NewRecorder()

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Create_Success(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	handler := newProductHandler(mockProducts, mockCategories)

	sellerID := uuid.New()
	categoryID := uuid.New()

	mockCategories.On("GetByID", mock.Anything, categoryID).Return(&domain.Category{ID: categoryID, Name: "Footwear"}, nil)
	mockProducts.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Wool socks" && p.SellerID == sellerID
	})).Return(nil)

	requestBody := CreateProductRequest{
		Name:       "Wool socks",
		Price:      "9.99",
		Stock:      5,
		CategoryID: categoryID.String(),
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", sellerID.String())
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockProducts.AssertExpectations(t)
	mockCategories.AssertExpectations(t)
}

func TestProductHandler_Create_MissingUserHeader(t *testing.T) {
	mockProducts := new(MockProductRepository)
	handler := newProductHandler(mockProducts, new(MockCategoryRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockProducts.AssertNotCalled(t, "Create")
}

func TestProductHandler_Create_InvalidPrice(t *testing.T) {
	mockProducts := new(MockProductRepository)
	handler := newProductHandler(mockProducts, new(MockCategoryRepository))

	requestBody := CreateProductRequest{
		Name:       "Wool socks",
		Price:      "not-a-number",
		CategoryID: uuid.New().String(),
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(bodyBytes))
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockProducts.AssertNotCalled(t, "Create")
}

func TestProductHandler_Delete_WrongSeller(t *testing.T) {
	mockProducts := new(MockProductRepository)
	handler := newProductHandler(mockProducts, new(MockCategoryRepository))

	productID := uuid.New()
	owner := uuid.New()
	other := uuid.New()

	mockProducts.On("GetByID", mock.Anything, productID).Return(&domain.Product{
		ID:       productID,
		Name:     "Wool socks",
		SellerID: owner,
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	req = withURLParam(req, "id", productID.String())
	req.Header.Set("X-User-ID", other.String())
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockProducts.AssertNotCalled(t, "Delete")
}

func TestProductHandler_Delete_Success(t *testing.T) {
	mockProducts := new(MockProductRepository)
	handler := newProductHandler(mockProducts, new(MockCategoryRepository))

	productID := uuid.New()
	sellerID := uuid.New()

	mockProducts.On("GetByID", mock.Anything, productID).Return(&domain.Product{
		ID:       productID,
		Name:     "Wool socks",
		SellerID: sellerID,
	}, nil)
	mockProducts.On("Delete", mock.Anything, productID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	req = withURLParam(req, "id", productID.String())
	req.Header.Set("X-User-ID", sellerID.String())
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockProducts.AssertExpectations(t)
}
