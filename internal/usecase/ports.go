package usecase

import (
	"context"

	"github.com/mealdex/recipedex/internal/domain"
)

// RecipeRepository defines storage operations for recipe aggregates.
// Get reports absence as (nil, nil); translating absence into an error
// is the usecase's job.
type RecipeRepository interface {
	List(ctx context.Context) ([]domain.Recipe, error)
	Save(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Get(ctx context.Context, id int64) (*domain.Recipe, error)
	Delete(ctx context.Context, id int64) error
}
