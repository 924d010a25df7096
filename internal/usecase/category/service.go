package category

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vkatkov/gomarket/internal/domain"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
)

// Service handles category business logic
type Service struct {
	repo     domain.CategoryRepository
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new category service
func NewService(repo domain.CategoryRepository, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   log,
	}
}

// ListActive retrieves all active categories
func (s *Service) ListActive(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", err)
		return nil, err
	}

	return categories, nil
}

// GetByID retrieves an active category by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Create creates a new category after validating its parent
func (s *Service) Create(ctx context.Context, category *domain.Category) error {
	if err := s.validate.Struct(category); err != nil {
		s.logger.Error("Category validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.validateParent(ctx, category.ParentID, nil); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category created successfully")

	return nil
}

// Update updates an existing category
func (s *Service) Update(ctx context.Context, category *domain.Category) error {
	if err := s.validate.Struct(category); err != nil {
		s.logger.Error("Category validation failed", err)
		return domain.ErrInvalidInput
	}

	if _, err := s.repo.GetByID(ctx, category.ID); err != nil {
		return err
	}

	if err := s.validateParent(ctx, category.ParentID, &category.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category updated successfully")

	return nil
}

// Delete soft-deletes a category
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"category_id": id,
	}).Info("Category deleted successfully")

	return nil
}

// validateParent checks that the parent category exists and is active, and
// that a category does not reference itself. Deeper cycles through
// intermediate categories are not detected.
func (s *Service) validateParent(ctx context.Context, parentID *uuid.UUID, currentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}

	if currentID != nil && *parentID == *currentID {
		s.logger.Debugf("Category %s cannot be its own parent", currentID)
		return domain.ErrInvalidInput
	}

	if _, err := s.repo.GetByID(ctx, *parentID); err != nil {
		return err
	}

	return nil
}
