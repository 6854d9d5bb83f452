package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mealdex/recipedex/internal/domain"
	"github.com/mealdex/recipedex/internal/present/rest/presenter"
	"github.com/mealdex/recipedex/internal/usecase"
)

type Handler struct {
	recipe *usecase.RecipeUsecase
}

func NewHandler(recipe *usecase.RecipeUsecase) *Handler {
	return &Handler{recipe: recipe}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/recipes/", h.handleList)
	e.POST("/recipes/", h.handleCreate)
	e.GET("/recipes/:recipe_id", h.handleGetByID)
}

func (h *Handler) handleList(c echo.Context) error {
	ctx := c.Request().Context()

	recipes, err := h.recipe.List(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, Summary(recipe))
	}
	return presenter.OK(c, summaries)
}

func (h *Handler) handleCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var in RecipeIn
	if err := c.Bind(&in); err != nil {
		return presenter.Unprocessable(c, []FieldViolation{
			violation(err.Error(), "value_error.jsondecode", "body"),
		})
	}

	recipe, violations := in.Validate()
	if len(violations) > 0 {
		return presenter.Unprocessable(c, violations)
	}

	created, err := h.recipe.Create(ctx, &recipe)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	return presenter.OK(c, Full(*created))
}

func (h *Handler) handleGetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		return presenter.Unprocessable(c, []FieldViolation{
			violation(msgNotAnInteger, typeInteger, "path", "recipe_id"),
		})
	}

	recipe, err := h.recipe.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, err.Error())
		}
		return presenter.InternalError(c, err)
	}

	return presenter.OK(c, Detail(*recipe))
}
