package handler

import (
	"errors"
	"net/http"

	"github.com/vkatkov/gomarket/internal/delivery/http/request"
	"github.com/vkatkov/gomarket/internal/delivery/http/response"
	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
	"github.com/vkatkov/gomarket/internal/usecase/catalog"
	"github.com/vkatkov/gomarket/internal/usecase/category"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *category.Service
	catalog *catalog.Service
	logger  *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *category.Service, catalogService *catalog.Service, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		catalog: catalogService,
		logger:  log,
	}
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// List handles GET /api/v1/categories
// @Summary List active categories
// @Tags Categories
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "List of categories"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListActive(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, categories)
}

// GetByID handles GET /api/v1/categories/:id
// @Summary Get a category by ID
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 200 {object} map[string]interface{} "Category details"
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	cat, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, cat)
}

// GetProducts handles GET /api/v1/categories/:id/products
// @Summary List products in a category
// @Description Get active, in-stock products belonging to an active category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 200 {object} map[string]interface{} "List of products"
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{id}/products [get]
func (h *CategoryHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	products, err := h.catalog.ListByCategory(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, products)
}

// Create handles POST /api/v1/categories
// @Summary Create a new category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category details"
// @Success 201 {object} map[string]interface{} "Category created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Parent category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := req.toDomain()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Create(r.Context(), cat); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, cat)
}

// Update handles PUT /api/v1/categories/:id
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Param category body CategoryRequest true "Updated category details"
// @Success 200 {object} map[string]interface{} "Category updated successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := req.toDomain()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	cat.ID = id

	if err := h.service.Update(r.Context(), cat); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, cat)
}

// Delete handles DELETE /api/v1/categories/:id
// @Summary Delete a category
// @Description Soft delete a category. Its products stop appearing in browse listings.
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 204 "Category deleted successfully"
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// toDomain converts the request body into a domain category
func (req CategoryRequest) toDomain() (*domain.Category, error) {
	cat := &domain.Category{
		Name: req.Name,
	}

	if req.ParentID != nil {
		parentID, err := parseUUIDField(*req.ParentID, "parent_id")
		if err != nil {
			return nil, err
		}
		cat.ParentID = &parentID
	}

	return cat, nil
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CategoryHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in category handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
