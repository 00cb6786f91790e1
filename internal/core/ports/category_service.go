package ports

import (
	"context"

	"github.com/workmania/timetrack/internal/core/domain"
)

// CreateCategoryInput carries the parameters for creating a category.
type CreateCategoryInput struct {
	UserID string
	Name   string
	Color  string
}

// UpdateCategoryInput applies a partial category edit (rename, recolor,
// archive/unarchive).
type UpdateCategoryInput struct {
	UserID     string
	CategoryID string
	Patch      CategoryPatch
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	List(ctx context.Context, userID string) ([]*domain.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error)
	// Delete removes a category; fails with ErrCategoryInUse while any time
	// entry still references it.
	Delete(ctx context.Context, categoryID, userID string) error
}

// AuthService resolves employee codes to accounts and issues session tokens.
type AuthService interface {
	// Login looks up the employee code and returns a signed session token.
	Login(ctx context.Context, employeeID string) (string, *domain.User, error)
	Register(ctx context.Context, employeeID string) (*domain.User, error)
}
