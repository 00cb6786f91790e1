package ports

import (
	"context"

	"github.com/workmania/timetrack/internal/core/domain"
)

// CategoryPatch carries a partial category update. Nil fields are untouched.
type CategoryPatch struct {
	Name       *string
	Color      *string
	IsArchived *bool
}

// CategoryRepository defines persistence operations for categories, all
// scoped by userID.
type CategoryRepository interface {
	// List returns the user's categories, active before archived, oldest first.
	List(ctx context.Context, userID string) ([]*domain.Category, error)
	FindByID(ctx context.Context, categoryID, userID string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, categoryID, userID string, patch CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, categoryID, userID string) error
}

// UserRepository defines account lookup for the session layer.
type UserRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
