package handlers

import (
	"mymixes/domain"
	"mymixes/internal/api/presenters"
	"mymixes/internal/utils"
	"mymixes/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		ListRecipes(c *fiber.Ctx) error
		GetRecipeBySlug(c *fiber.Ctx) error
		GetRecipeByID(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ListIngredientTypes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	req := domain.ListRecipesRequest{
		Query: c.Query("query"),
		Page:  queryInt(c, "page"),
		Size:  queryInt(c, "size"),
	}

	res, err := h.recipeService.ListRecipes(c.Context(), req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetRecipeBySlug(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetRecipeByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.recipeService.GetRecipeByID(c.Context(), id)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	req := new(domain.RecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), id); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent)
}

func (h *recipeHandler) ListIngredientTypes(c *fiber.Ctx) error {
	res, err := h.recipeService.ListIngredientTypes(c.Context())
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
