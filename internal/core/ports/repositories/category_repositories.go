package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines CRUD for transaction categories.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
