package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/utils"
)

var mealFilterTypes = []string{"c", "i", "s"}

// MealDetails returns the reshaped TheMealDB detail for a meal id.
func (h *Handler) MealDetails(c *gin.Context) {
	detail, err := h.MealDB.Lookup(c.Param("id"))
	if err != nil {
		respondError(c, errUpstream("Failed to fetch meal details", err))
		return
	}
	if detail == nil {
		respondError(c, errNotFound("Meal not found"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// MealCategories lists TheMealDB categories.
func (h *Handler) MealCategories(c *gin.Context) {
	categories, err := h.MealDB.Categories()
	if err != nil {
		respondError(c, errUpstream("Failed to fetch categories", err))
		return
	}
	c.Data(http.StatusOK, jsonContentType, categories)
}

// RandomMeals returns a small batch of random meal cards.
func (h *Handler) RandomMeals(c *gin.Context) {
	cards, err := h.MealDB.Random(6)
	if err != nil {
		respondError(c, errUpstream("Failed to fetch random meals from TheMealDB", err))
		return
	}
	c.JSON(http.StatusOK, cards)
}

// SearchMeals filters meals by category, ingredient or name.
func (h *Handler) SearchMeals(c *gin.Context) {
	query := c.Query("query")
	filterType := c.Query("filterType")
	if query == "" || filterType == "" {
		respondError(c, errValidation("Query and filterType are required."))
		return
	}
	if !utils.ContainsString(mealFilterTypes, filterType) {
		respondError(c, errValidation("Invalid filterType specified."))
		return
	}

	cards, err := h.MealDB.Filter(query, filterType)
	if err != nil {
		respondError(c, errUpstream("Failed to fetch search results from TheMealDB", err))
		return
	}
	c.JSON(http.StatusOK, cards)
}
