package catalog

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
)

// RatingCache caches the review-driven rating for hot product reads,
// satisfied by cache.RedisCache. The review service invalidates it on every
// review write, so a hit is never staler than the row value plus one
// invalidation round-trip.
type RatingCache interface {
	GetProductRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	SetProductRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error
}

// Service is the catalog facade: filtered and ranked product listing plus
// product lifecycle operations. It holds no state of its own and is safe for
// concurrent use.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	ratings    RatingCache
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewService creates a new catalog service
func NewService(products domain.ProductRepository, categories domain.CategoryRepository, ratings RatingCache, log *logger.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		ratings:    ratings,
		validate:   validator.New(),
		logger:     log,
	}
}

// ListProducts returns one page of the filtered catalog listing together
// with the total match count. Page params and the price range are validated
// before any store access. The count and the page run as independent
// statements; under concurrent writes they may observe slightly different
// moments, which is accepted.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter, page domain.PageParams) (*domain.ProductPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	total, err := s.products.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count products", err)
		return nil, err
	}

	items, err := s.products.List(ctx, filter, page)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	return &domain.ProductPage{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// GetProduct retrieves an active product by ID. The rating is served from
// cache when present; a miss is filled from the row value. Cache failures
// degrade to the row value, never to an error.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", id)
		} else {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	rating, err := s.ratings.GetProductRating(ctx, id)
	switch {
	case err == nil:
		product.Rating = rating
	case errors.Is(err, domain.ErrNotFound):
		if err := s.ratings.SetProductRating(ctx, id, product.Rating); err != nil {
			s.logger.Warnf("Failed to cache rating for product %s: %v", id, err)
		}
	default:
		s.logger.Warnf("Rating cache read failed for product %s: %v", id, err)
	}

	return product, nil
}

// ListByCategory retrieves all active products in a category
func (s *Service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list products by category", err)
		return nil, err
	}

	return products, nil
}

// CreateProduct creates a new product owned by sellerID
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product, sellerID uuid.UUID) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}

	product.SellerID = sellerID

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  sellerID,
		"name":       product.Name,
	}).Info("Product created successfully")

	return nil
}

// UpdateProduct updates a product on behalf of sellerID. Only the owning
// seller may mutate a product.
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product, sellerID uuid.UUID) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	existing, err := s.products.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}

	if existing.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if product.CategoryID != existing.CategoryID {
		if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
			return err
		}
	}

	product.SellerID = existing.SellerID

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product updated successfully")

	return nil
}

// DeleteProduct soft-deletes a product on behalf of sellerID
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID, sellerID uuid.UUID) error {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deleted successfully")

	return nil
}

func (s *Service) validateProduct(product *domain.Product) error {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	// Validator tags cannot inspect decimals
	if !product.Price.IsPositive() {
		s.logger.Debugf("Rejected non-positive price: %s", product.Price)
		return domain.ErrInvalidInput
	}

	return nil
}
