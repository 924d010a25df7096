package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vkatkov/gomarket/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	// Return domain.ErrNotFound instead of a cryptic foreign key violation
	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active)`
	err := r.db.GetContext(ctx, &exists, checkQuery, review.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	query := `
		INSERT INTO reviews (product_id, user_id, grade, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at
	`

	err = r.db.QueryRowxContext(
		ctx,
		query,
		review.ProductID,
		review.UserID,
		review.Grade,
		review.Comment,
	).Scan(
		&review.ID,
		&review.IsActive,
		&review.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an active review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, grade, comment, is_active, created_at
		FROM reviews
		WHERE id = $1 AND is_active
	`

	var review domain.Review
	err := r.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &review, nil
}

// ListByProduct retrieves active reviews for a product with pagination
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, grade, comment, is_active, created_at
		FROM reviews
		WHERE product_id = $1 AND is_active
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	var reviews []*domain.Review
	err := r.db.SelectContext(ctx, &reviews, query, productID, limit, offset)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// CountByProduct returns the total number of active reviews for a product
func (r *ReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE product_id = $1 AND is_active`

	var count int
	err := r.db.GetContext(ctx, &count, query, productID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Delete soft-deletes a review
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reviews
		SET is_active = FALSE
		WHERE id = $1 AND is_active
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
