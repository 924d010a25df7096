package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review represents a product review. A soft-deleted review is excluded from
// listings and rating computation but retained for audit.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id" validate:"required"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	Grade     int       `json:"grade" db:"grade" validate:"required,min=1,max=5"`
	Comment   *string   `json:"comment,omitempty" db:"comment" validate:"omitempty,max=5000"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *Review) error

	// GetByID retrieves an active review by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// ListByProduct retrieves active reviews for a product with pagination
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*Review, error)

	// CountByProduct returns the number of active reviews for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int, error)

	// Delete soft-deletes a review. Deleting an already deleted review
	// returns ErrNotFound and changes nothing.
	Delete(ctx context.Context, id uuid.UUID) error
}
