package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mealdex/recipedex/internal/domain"
	"github.com/mealdex/recipedex/internal/infra/database/models"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns every recipe in storage order, children not loaded.
func (r *RecipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {

	var rows []models.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, toDomain(row, nil))
	}
	return recipes, nil
}

// Save persists the aggregate as an upsert keyed by primary id. When the
// candidate carries an id already present, the stored row's scalar columns
// are updated and its entire ingredient set is replaced by the candidate's.
// Otherwise parent and children are inserted fresh. Ingredient ids supplied
// by the caller are never honored; children are always minted from title
// only. The whole operation runs in one transaction.
func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {

	row := models.Recipe{
		ID:          recipe.ID,
		Title:       recipe.Title,
		CookingTime: recipe.CookingTime,
		ViewsNumber: recipe.ViewsNumber,
		Body:        recipe.Body,
	}

	children := make([]models.Ingredient, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		children = append(children, models.Ingredient{Title: ingredient.Title})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		replaced := false
		if row.ID != 0 {
			var existing models.Recipe
			err := tx.Take(&existing, "id = ?", row.ID).Error
			switch {
			case err == nil:
				updates := map[string]any{
					"title":        row.Title,
					"cooking_time": row.CookingTime,
					"views_number": row.ViewsNumber,
					"recipe":       row.Body,
				}
				if err := tx.Model(&models.Recipe{}).
					Where("id = ?", row.ID).
					Updates(updates).Error; err != nil {
					return err
				}
				if err := tx.Where("recipe_id = ?", row.ID).
					Delete(&models.Ingredient{}).Error; err != nil {
					return err
				}
				replaced = true
			case errors.Is(err, gorm.ErrRecordNotFound):
				// unknown id: insert fresh, keeping the carried id
			default:
				return err
			}
		}

		if !replaced {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for i := range children {
			children[i].RecipeID = row.ID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := toDomain(row, children)
	return &saved, nil
}

// Get loads one recipe with its full ingredient set in a single eager
// fetch. Absence is reported as (nil, nil), not as an error.
func (r *RecipeRepository) Get(ctx context.Context, id int64) (*domain.Recipe, error) {

	var row models.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
				return db.Order("ingredients.id")
			}).
			Take(&row, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipe")
	}

	recipe := toDomain(row, row.Ingredients)
	return &recipe, nil
}

// Delete removes a recipe and all of its ingredients: children first,
// then the parent, inside one transaction. Not exposed over HTTP.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

func toDomain(row models.Recipe, children []models.Ingredient) domain.Recipe {
	ingredients := make([]domain.Ingredient, 0, len(children))
	for _, child := range children {
		ingredients = append(ingredients, domain.Ingredient{
			ID:    child.ID,
			Title: child.Title,
		})
	}
	return domain.Recipe{
		ID:          row.ID,
		Title:       row.Title,
		CookingTime: row.CookingTime,
		ViewsNumber: row.ViewsNumber,
		Body:        row.Body,
		Ingredients: ingredients,
	}
}
