package domain

import (
	"context"

	"github.com/google/uuid"
)

// Category represents a product category. Categories form a tree via
// ParentID; a category may not reference itself as parent.
type Category struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Name     string     `json:"name" db:"name" validate:"required,min=3,max=50"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	IsActive bool       `json:"is_active" db:"is_active"`
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves an active category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// ListActive retrieves all active categories
	ListActive(ctx context.Context) ([]*Category, error)

	// Update updates an existing category
	Update(ctx context.Context, category *Category) error

	// Delete soft-deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
