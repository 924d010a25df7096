package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkatkov/gomarket/internal/domain"
)

func newMockProductRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewProductRepository(sqlxDB, "russian")

	return repo, mock, func() { _ = db.Close() }
}

func productRows(ids ...uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "price", "stock", "category_id",
		"seller_id", "rating", "is_active", "created_at", "updated_at",
	})
	for i, id := range ids {
		rows.AddRow(id, "Product", nil, "19.99", 3+i, uuid.New(), uuid.New(), "4.50", true, now, now)
	}
	return rows
}

func TestProductRepository_List_BrowseOrdersByID(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery("JOIN categories c ON c.id = p.category_id").
		WithArgs(20, 0).
		WillReturnRows(productRows(first, second))

	products, err := repo.List(context.Background(), domain.ProductFilter{}, domain.PageParams{Page: 1, PageSize: 20})

	assert.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first, products[0].ID)
	assert.Equal(t, second, products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_SearchRanksByCoverDensity(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	// Ranked listing orders by relevance with id tie-break and binds the
	// trimmed query text
	mock.ExpectQuery("ORDER BY ts_rank_cd").
		WithArgs("russian", "red -socks", 10, 10).
		WillReturnRows(productRows(uuid.New()))

	filter := domain.ProductFilter{Search: " red -socks "}
	products, err := repo.List(context.Background(), filter, domain.PageParams{Page: 2, PageSize: 10})

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_PriceRangeArgs(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	minPrice := decimal.RequireFromString("10.00")
	maxPrice := decimal.RequireFromString("50.00")

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WithArgs(minPrice, maxPrice, 20, 0).
		WillReturnRows(productRows())

	filter := domain.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}
	products, err := repo.List(context.Background(), filter, domain.PageParams{Page: 1, PageSize: 20})

	assert.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Count_SamePredicateWithoutWindow(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	inStock := true
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products p").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))

	count, err := repo.Count(context.Background(), domain.ProductFilter{InStock: &inStock})

	assert.NoError(t, err)
	assert.Equal(t, 250, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM products p").
		WithArgs(id).
		WillReturnRows(productRows())

	product, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_Delete_AlreadyDeleted(t *testing.T) {
	repo, mock, closeFn := newMockProductRepo(t)
	defer closeFn()

	id := uuid.New()
	mock.ExpectExec("UPDATE products").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
