package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/provider"
)

const jsonContentType = "application/json; charset=utf-8"

func intQuery(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// SearchRecipes proxies a title search to Spoonacular, nutrition included.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.DefaultQuery("q", "pasta")
	number := intQuery(c, "number", 10)

	results, err := h.Spoon.Search(query, number)
	if err != nil {
		respondError(c, errUpstream("Failed to fetch from Spoonacular", err))
		return
	}
	c.Data(http.StatusOK, jsonContentType, results)
}

// RandomRecipes returns a batch of random Spoonacular recipes.
func (h *Handler) RandomRecipes(c *gin.Context) {
	number := intQuery(c, "number", 6)
	includeNutrition := c.DefaultQuery("includeNutrition", "true") != "false"

	recipes, err := h.Spoon.Random(number, includeNutrition)
	if err != nil {
		respondError(c, errUpstream("Failed to fetch random recipes from Spoonacular", err))
		return
	}
	c.Data(http.StatusOK, jsonContentType, recipes)
}

// RecipeIngredients returns the flattened ingredient list of a recipe.
func (h *Handler) RecipeIngredients(c *gin.Context) {
	out, err := h.Spoon.Ingredients(c.Param("id"))
	if err != nil {
		respondError(c, errUpstream("Failed to fetch ingredients", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// MacrosByTitle returns integer-rounded macro and micronutrients for the best
// title match.
func (h *Handler) MacrosByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		respondError(c, errValidation("Title is required"))
		return
	}

	out, err := h.Spoon.MacrosByTitle(title)
	if errors.Is(err, provider.ErrNoRecipe) {
		respondError(c, errNotFound("No recipe found with that title."))
		return
	}
	if err != nil {
		respondError(c, errUpstream("Failed to fetch macros by title.", err))
		return
	}
	c.JSON(http.StatusOK, out)
}
