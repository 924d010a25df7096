package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name" validate:"required,min=3,max=100"`
	Description *string         `json:"description,omitempty" db:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock" validate:"gte=0"`
	CategoryID  uuid.UUID       `json:"category_id" db:"category_id" validate:"required"`
	SellerID    uuid.UUID       `json:"seller_id" db:"seller_id"`
	Rating      decimal.Decimal `json:"rating" db:"rating"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductPage is one page of a filtered product listing together with the
// total match count. Under concurrent writes the page and the total may
// observe slightly different moments; this is accepted behavior.
type ProductPage struct {
	Items    []*Product `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves an active product by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves one page of active products matching the filter.
	// With a search query the page is ordered by relevance, ties broken by
	// ascending id; without one it is ordered by ascending id.
	List(ctx context.Context, filter ProductFilter, page PageParams) ([]*Product, error)

	// Count returns the number of active products matching the filter,
	// ignoring pagination. Runs as a separate statement from List.
	Count(ctx context.Context, filter ProductFilter) (int, error)

	// ListByCategory retrieves all active products in a category
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// Delete soft-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
