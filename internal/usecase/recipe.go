package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mealdex/recipedex/internal/domain"
)

type RecipeUsecase struct {
	repo  RecipeRepository
	cache *cache.Cache
}

func NewRecipeUsecase(repo RecipeRepository) *RecipeUsecase {
	return &RecipeUsecase{
		repo:  repo,
		cache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (uc *RecipeUsecase) List(ctx context.Context) ([]domain.Recipe, error) {
	return uc.repo.List(ctx)
}

// Create persists a transient aggregate and warms the detail cache with
// the saved result, minted ids included.
func (uc *RecipeUsecase) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	saved, err := uc.repo.Save(ctx, recipe)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey(saved.ID), saved, cache.DefaultExpiration)
	return saved, nil
}

// Get returns the aggregate with children, or domain.NotFoundError when
// no such recipe exists. Cached entries cannot go stale: nothing in the
// API mutates a recipe after creation, and Delete evicts.
func (uc *RecipeUsecase) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	if cached, found := uc.cache.Get(cacheKey(id)); found {
		return cached.(*domain.Recipe), nil
	}

	recipe, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.NotFoundError{Resource: fmt.Sprintf("Recipe with id=%d", id)}
	}

	uc.cache.Set(cacheKey(id), recipe, cache.DefaultExpiration)
	return recipe, nil
}

// Delete removes the aggregate from storage and evicts its cache entry.
func (uc *RecipeUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Delete(cacheKey(id))
	return nil
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
