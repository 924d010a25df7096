package review

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
)

// Subject is the JetStream subject for review lifecycle events
const Subject = "reviews.events"

// Event types published on review lifecycle changes
const (
	EventCreated = "review.created"
	EventDeleted = "review.deleted"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Cache defines the review caching interface, satisfied by cache.RedisCache
type Cache interface {
	GetReviewsList(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error)
	SetReviewsList(ctx context.Context, productID uuid.UUID, limit, offset int, reviews []*domain.Review) error
	InvalidateAllProductCache(ctx context.Context, productID uuid.UUID) error
}

// Event is a review lifecycle event consumed by the rating worker
type Event struct {
	Type      string    `json:"type"`
	ProductID uuid.UUID `json:"product_id"`
	ReviewID  uuid.UUID `json:"review_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Service handles review lifecycle with caching and event publishing. Every
// create or soft-delete emits an event that triggers rating recomputation
// for the affected product.
type Service struct {
	repo      domain.ReviewRepository
	cache     Cache
	publisher EventPublisher
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(
	repo domain.ReviewRepository,
	cache Cache,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		validate:  validator.New(),
		logger:    log,
	}
}

// Create creates a new review authored by userID
func (s *Service) Create(ctx context.Context, review *domain.Review, userID uuid.UUID) error {
	review.UserID = userID

	if err := s.validate.Struct(review); err != nil {
		s.logger.Error("Review validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.logger.Error("Failed to create review", err)
		return err
	}

	// Stale cache would show an outdated rating and review list
	if err := s.cache.InvalidateAllProductCache(ctx, review.ProductID); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", review.ProductID, err)
	}

	s.publishEvent(ctx, EventCreated, review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"grade":      review.Grade,
	}).Info("Review created successfully")

	return nil
}

// GetByID retrieves an active review by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Review not found: %s", id)
		} else {
			s.logger.Error("Failed to get review", err)
		}
		return nil, err
	}

	return review, nil
}

// ListByProduct retrieves active reviews for a product with caching
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, int, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reviews, err := s.cache.GetReviewsList(ctx, productID, limit, offset)
	if err == nil {
		s.logger.Debugf("Cache hit for product %s reviews (limit=%d, offset=%d)", productID, limit, offset)
		total, err := s.repo.CountByProduct(ctx, productID)
		if err != nil {
			s.logger.Error("Failed to count reviews", err)
			return nil, 0, err
		}
		return reviews, total, nil
	}

	s.logger.Debugf("Cache miss for product %s reviews (limit=%d, offset=%d)", productID, limit, offset)
	reviews, err = s.repo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list reviews by product", err)
		return nil, 0, err
	}

	total, err := s.repo.CountByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to count reviews", err)
		return nil, 0, err
	}

	if err := s.cache.SetReviewsList(ctx, productID, limit, offset, reviews); err != nil {
		s.logger.Warnf("Failed to cache reviews for product %s: %v", productID, err)
	}

	return reviews, total, nil
}

// Delete soft-deletes a review on behalf of userID. Only the author may
// delete a review. Deleting an already deleted review is a not-found: the
// stored rating is unchanged either way since recomputation always reads
// the current active set.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get review for deletion", err)
		return err
	}

	if review.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete review", err)
		return err
	}

	if err := s.cache.InvalidateAllProductCache(ctx, review.ProductID); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", review.ProductID, err)
	}

	s.publishEvent(ctx, EventDeleted, review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  id,
		"product_id": review.ProductID,
	}).Info("Review deleted successfully")

	return nil
}

// publishEvent publishes a review lifecycle event. A publish failure is
// logged, not returned: the review write already committed, and the next
// event for the product repairs the rating.
func (s *Service) publishEvent(ctx context.Context, eventType string, review *domain.Review) {
	event := Event{
		Type:      eventType,
		ProductID: review.ProductID,
		ReviewID:  review.ID,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %s", review.ID)
		return
	}

	if err := s.publisher.Publish(ctx, Subject, data); err != nil {
		s.logger.Errorf(err, "Failed to publish %s event for review %s", eventType, review.ID)
	}
}
