package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// CategoryService implements category CRUD with the referential-integrity
// guard on delete.
type CategoryService struct {
	categories ports.CategoryRepository
	entries    ports.EntryRepository
	now        func() time.Time
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, entries ports.EntryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		entries:    entries,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.categories.List(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	category := &domain.Category{
		UserID:    input.UserID,
		Name:      name,
		Color:     input.Color,
		CreatedAt: s.now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("category_id", category.ID).Msg("category created")
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, input ports.UpdateCategoryInput) (*domain.Category, error) {
	if input.Patch.Name != nil && strings.TrimSpace(*input.Patch.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	updated, err := s.categories.Update(ctx, input.CategoryID, input.UserID, input.Patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("category_id", input.CategoryID).Msg("category updated")
	return updated, nil
}

// Delete removes a category unless any time entry still references it.
// Historical entries keep their category rather than being silently unlinked;
// archiving is the supported way to retire a category still in use.
func (s *CategoryService) Delete(ctx context.Context, categoryID, userID string) error {
	if _, err := s.categories.FindByID(ctx, categoryID, userID); err != nil {
		return err
	}

	count, err := s.entries.CountByCategory(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, categoryID, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("category_id", categoryID).Msg("category deleted")
	return nil
}
