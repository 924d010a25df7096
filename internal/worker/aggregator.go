package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
)

// Aggregator recomputes product ratings from the active review set
type Aggregator struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewAggregator creates a new rating aggregator
func NewAggregator(db *sqlx.DB, logger *logger.Logger) *Aggregator {
	return &Aggregator{
		db:     db,
		logger: logger,
	}
}

// Recompute sets the product rating to the mean grade of its active reviews,
// or 0 when none exist. The aggregate is evaluated by the database inside a
// single UPDATE, under the row lock that UPDATE takes: concurrent
// recomputations for the same product serialize on that lock and the
// committed value always reflects the review set at commit time. Unrelated
// products are never blocked. On failure nothing is written.
//
// Returns domain.ErrNotFound when the product does not exist or is
// soft-deleted.
func (a *Aggregator) Recompute(ctx context.Context, productID uuid.UUID) error {
	query := `
		UPDATE products
		SET
			rating = COALESCE(
				(SELECT ROUND(AVG(grade)::numeric, 2)
				 FROM reviews
				 WHERE product_id = $1 AND is_active),
				0
			),
			updated_at = $2
		WHERE id = $1 AND is_active
	`

	result, err := a.db.ExecContext(ctx, query, productID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to recompute product rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	a.logger.WithFields(map[string]any{
		"product_id": productID.String(),
	}).Info("Recomputed product rating")

	return nil
}

// CurrentRating retrieves the stored rating for a product
func (a *Aggregator) CurrentRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var rating decimal.NullDecimal
	query := `SELECT rating FROM products WHERE id = $1 AND is_active`

	err := a.db.GetContext(ctx, &rating, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get current rating: %w", err)
	}

	if !rating.Valid {
		return decimal.Zero, nil
	}

	return rating.Decimal, nil
}
