package rest

import (
	"unicode/utf8"

	"github.com/mealdex/recipedex/internal/domain"
)

const maxTitleLength = 100

// FieldViolation is one entry of a 422 detail list.
type FieldViolation struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

const (
	msgRequired     = "field required"
	msgMaxLength    = "ensure this value has at most 100 characters"
	msgMinLength    = "ensure this value has at least 1 characters"
	msgNotAnInteger = "value is not a valid integer"

	typeRequired  = "value_error.missing"
	typeMaxLength = "value_error.any_str.max_length"
	typeMinLength = "value_error.any_str.min_length"
	typeInteger   = "type_error.integer"
)

// IngredientIn is the inbound shape of one ingredient: title only, no id.
type IngredientIn struct {
	Title *string `json:"title"`
}

// RecipeIn is the creation payload. Optional fields are pointers so
// absent and zero can be told apart when applying defaults.
type RecipeIn struct {
	Title       *string         `json:"title"`
	CookingTime *int            `json:"cooking_time"`
	ViewsNumber *int            `json:"views_number"`
	Body        *string         `json:"recipe"`
	Ingredients *[]IngredientIn `json:"ingredients"`
}

// Validate checks the payload and, when clean, builds the transient
// aggregate with defaults applied (cooking_time 10, views_number 0) and
// ingredients minted from title only. All violations are reported at
// once, one entry per offending field.
func (in RecipeIn) Validate() (domain.Recipe, []FieldViolation) {

	var violations []FieldViolation

	switch {
	case in.Title == nil:
		violations = append(violations, violation(msgRequired, typeRequired, "body", "title"))
	case utf8.RuneCountInString(*in.Title) > maxTitleLength:
		violations = append(violations, violation(msgMaxLength, typeMaxLength, "body", "title"))
	}

	switch {
	case in.Body == nil:
		violations = append(violations, violation(msgRequired, typeRequired, "body", "recipe"))
	case *in.Body == "":
		violations = append(violations, violation(msgMinLength, typeMinLength, "body", "recipe"))
	}

	var ingredients []domain.Ingredient
	if in.Ingredients == nil {
		violations = append(violations, violation(msgRequired, typeRequired, "body", "ingredients"))
	} else {
		for i, ingredient := range *in.Ingredients {
			switch {
			case ingredient.Title == nil:
				violations = append(violations, violation(msgRequired, typeRequired, "body", "ingredients", i, "title"))
			case utf8.RuneCountInString(*ingredient.Title) > maxTitleLength:
				violations = append(violations, violation(msgMaxLength, typeMaxLength, "body", "ingredients", i, "title"))
			default:
				ingredients = append(ingredients, domain.Ingredient{Title: *ingredient.Title})
			}
		}
	}

	if len(violations) > 0 {
		return domain.Recipe{}, violations
	}

	recipe := domain.Recipe{
		Title:       *in.Title,
		CookingTime: 10,
		ViewsNumber: 0,
		Body:        *in.Body,
		Ingredients: ingredients,
	}
	if in.CookingTime != nil {
		recipe.CookingTime = *in.CookingTime
	}
	if in.ViewsNumber != nil {
		recipe.ViewsNumber = *in.ViewsNumber
	}
	return recipe, nil
}

func violation(msg, typ string, loc ...any) FieldViolation {
	return FieldViolation{Loc: loc, Msg: msg, Type: typ}
}

// RecipeSummary is the list view: no id, no body, no children.
type RecipeSummary struct {
	Title       string `json:"title"`
	CookingTime int    `json:"cooking_time"`
	ViewsNumber int    `json:"views_number"`
}

type IngredientOut struct {
	Title string `json:"title"`
}

// RecipeDetail is the by-id view. It intentionally omits views_number.
type RecipeDetail struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	CookingTime int             `json:"cooking_time"`
	Body        string          `json:"recipe"`
	Ingredients []IngredientOut `json:"ingredients"`
}

// RecipeFull is the creation response: every field, minted id included.
type RecipeFull struct {
	RecipeDetail
	ViewsNumber int `json:"views_number"`
}

func Summary(r domain.Recipe) RecipeSummary {
	return RecipeSummary{
		Title:       r.Title,
		CookingTime: r.CookingTime,
		ViewsNumber: r.ViewsNumber,
	}
}

func Detail(r domain.Recipe) RecipeDetail {
	ingredients := make([]IngredientOut, 0, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		ingredients = append(ingredients, IngredientOut{Title: ingredient.Title})
	}
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		CookingTime: r.CookingTime,
		Body:        r.Body,
		Ingredients: ingredients,
	}
}

func Full(r domain.Recipe) RecipeFull {
	return RecipeFull{
		RecipeDetail: Detail(r),
		ViewsNumber:  r.ViewsNumber,
	}
}
