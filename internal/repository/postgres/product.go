package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vkatkov/gomarket/internal/domain"
)

const productColumns = "p.id, p.name, p.description, p.price, p.stock, p.category_id, p.seller_id, p.rating, p.is_active, p.created_at, p.updated_at"

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db          *sqlx.DB
	ftsLanguage string
}

// NewProductRepository creates a new PostgreSQL product repository.
// ftsLanguage must match the text-search configuration of the search_tsv
// column, which the database keeps in sync with name/description on every
// product write.
func NewProductRepository(db *sqlx.DB, ftsLanguage string) *ProductRepository {
	return &ProductRepository{db: db, ftsLanguage: ftsLanguage}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, category_id, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, rating, is_active, created_at, updated_at
	`

	now := time.Now()

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.SellerID,
		now,
		now,
	).Scan(
		&product.ID,
		&product.Rating,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an active product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		WHERE p.id = $1 AND p.is_active
	`, productColumns)

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// List retrieves one page of active products matching the filter. With a
// search query the ordering is cover-density relevance descending, ties
// broken by ascending id so that equal-score rows never reorder between
// pages; without one it is ascending id.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, page domain.PageParams) ([]*domain.Product, error) {
	f := composeProductFilter(filter, r.ftsLanguage)

	orderBy := "p.id"
	if f.tsquery != "" {
		orderBy = fmt.Sprintf("ts_rank_cd(p.search_tsv, %s) DESC, p.id", f.tsquery)
	}

	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`, productColumns, f.fromClause(), f.whereClause(), orderBy,
		f.bind(page.PageSize), f.bind(page.Offset()))

	var products []*domain.Product
	err := r.db.SelectContext(ctx, &products, query, f.args...)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// Count returns the total number of active products matching the filter
func (r *ProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int, error) {
	f := composeProductFilter(filter, r.ftsLanguage)

	query := fmt.Sprintf(`SELECT COUNT(*) %s WHERE %s`, f.fromClause(), f.whereClause())

	var count int
	err := r.db.GetContext(ctx, &count, query, f.args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ListByCategory retrieves all active products in a category
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		WHERE p.category_id = $1 AND p.is_active
		ORDER BY p.id
	`, productColumns)

	var products []*domain.Product
	err := r.db.SelectContext(ctx, &products, query, categoryID)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// Update updates an existing product. Rating is owned by the aggregator and
// is never written here.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5, updated_at = $6
		WHERE id = $7 AND is_active
		RETURNING updated_at
	`

	product.UpdatedAt = time.Now()

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.UpdatedAt,
		product.ID,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete soft-deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2 AND is_active
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
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
