package handler

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vkatkov/gomarket/internal/delivery/http/request"
	"github.com/vkatkov/gomarket/internal/delivery/http/response"
	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
	"github.com/vkatkov/gomarket/internal/usecase/catalog"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	service         *catalog.Service
	logger          *logger.Logger
	defaultPageSize int
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalog.Service, defaultPageSize int, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:         service,
		logger:          log,
		defaultPageSize: defaultPageSize,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  string  `json:"category_id"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  string  `json:"category_id"`
}

// List handles GET /api/v1/products
// @Summary List catalog products
// @Description Get a page of active products, filtered and optionally ranked by full-text search relevance
// @Tags Products
// @Accept json
// @Produce json
// @Param search query string false "Full-text search query"
// @Param category_id query string false "Category ID (UUID)"
// @Param seller_id query string false "Seller ID (UUID)"
// @Param min_price query number false "Minimum price, inclusive"
// @Param max_price query number false "Maximum price, inclusive"
// @Param in_stock query bool false "Filter by stock availability"
// @Param page query int false "Page number, starting from 1" default(1)
// @Param page_size query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{} "Page of products"
// @Failure 400 {object} map[string]string "Invalid filter or pagination parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page := domain.PageParams{
		Page:     request.GetIntQuery(r, "page", 1),
		PageSize: request.GetIntQuery(r, "page_size", h.defaultPageSize),
	}

	result, err := h.service.ListProducts(r.Context(), filter, page)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Page(w, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Description Get detailed information about a product including its rating
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, product)
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a new product owned by the authenticated seller
// @Tags Products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} map[string]interface{} "Product created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Missing user identity"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, err := request.GetUserID(r)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req CreateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := req.toDomain()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CreateProduct(r.Context(), product, sellerID); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product
// @Description Update product details. Only the owning seller may update a product.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body UpdateProductRequest true "Updated product details"
// @Success 200 {object} map[string]interface{} "Product updated successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Product owned by another seller"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	sellerID, err := request.GetUserID(r)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := CreateProductRequest(req).toDomain()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	product.ID = id

	if err := h.service.UpdateProduct(r.Context(), product, sellerID); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, product)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Delete a product
// @Description Soft delete a product. Only the owning seller may delete a product.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 204 "Product deleted successfully"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 403 {object} map[string]string "Product owned by another seller"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sellerID, err := request.GetUserID(r)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id, sellerID); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// toDomain converts the request body into a domain product
func (req CreateProductRequest) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, errors.New("invalid price")
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
	}

	if req.CategoryID != "" {
		categoryID, err := parseUUIDField(req.CategoryID, "category_id")
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}

	return product, nil
}

// parseFilter builds a product filter from query parameters
func (h *ProductHandler) parseFilter(r *http.Request) (domain.ProductFilter, error) {
	var filter domain.ProductFilter

	categoryID, err := request.GetUUIDQuery(r, "category_id")
	if err != nil {
		return filter, err
	}
	filter.CategoryID = categoryID

	sellerID, err := request.GetUUIDQuery(r, "seller_id")
	if err != nil {
		return filter, err
	}
	filter.SellerID = sellerID

	minPrice, err := request.GetDecimalQuery(r, "min_price")
	if err != nil {
		return filter, err
	}
	filter.MinPrice = minPrice

	maxPrice, err := request.GetDecimalQuery(r, "max_price")
	if err != nil {
		return filter, err
	}
	filter.MaxPrice = maxPrice

	inStock, err := request.GetBoolQuery(r, "in_stock")
	if err != nil {
		return filter, err
	}
	filter.InStock = inStock

	filter.Search = r.URL.Query().Get("search")

	return filter, nil
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidFilterRange):
		response.Error(w, http.StatusBadRequest, domain.ErrInvalidFilterRange.Error())
	case errors.Is(err, domain.ErrInvalidPageParams):
		response.Error(w, http.StatusBadRequest, domain.ErrInvalidPageParams.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Operation not permitted")
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
