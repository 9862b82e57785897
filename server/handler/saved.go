package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/model"
	"github.com/plateful/plateful/server/middlewares"
	Logger "github.com/plateful/plateful/utils/log"
	"gorm.io/gorm"
)

type saveRecipeRequest struct {
	RecipeID string `json:"recipeId"`
}

// SaveRecipe records an external recipe id for the authenticated user. The
// composite primary key decides duplicates atomically, so two concurrent
// saves of the same recipe cannot both succeed.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == "" {
		respondError(c, errValidation("Recipe ID is required"))
		return
	}

	saved := model.SavedRecipe{
		UserID:   middlewares.UserID(c),
		RecipeID: req.RecipeID,
	}
	if err := h.DB.Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, errConflict("Recipe already saved"))
			return
		}
		respondError(c, errInternal("Failed to save recipe", err))
		return
	}

	c.JSON(http.StatusCreated, saved)
}

type savedIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

type savedRecipeView struct {
	RecipeID    string            `json:"recipeId"`
	Title       string            `json:"title"`
	Image       string            `json:"image"`
	Ingredients []savedIngredient `json:"ingredients"`
}

// ListSaved returns the user's saved recipes enriched with detail from
// TheMealDB. Partial results beat a failed listing: a row whose enrichment
// fails is logged and skipped.
func (h *Handler) ListSaved(c *gin.Context) {
	var rows []model.SavedRecipe
	if err := h.DB.Where("user_id = ?", middlewares.UserID(c)).Order("created_at DESC").Find(&rows).Error; err != nil {
		respondError(c, errInternal("Failed to load saved recipes", err))
		return
	}

	results := []savedRecipeView{}
	for _, row := range rows {
		detail, err := h.MealDB.Lookup(row.RecipeID)
		if err != nil {
			Logger.Log.WithField("recipeId", row.RecipeID).Warn("meal lookup failed: ", err)
			continue
		}
		if detail == nil {
			continue
		}

		ingredients := make([]savedIngredient, 0, len(detail.Ingredients))
		for _, ing := range detail.Ingredients {
			ingredients = append(ingredients, savedIngredient{Name: ing.Ingredient, Measure: ing.Measure})
		}
		results = append(results, savedRecipeView{
			RecipeID:    row.RecipeID,
			Title:       detail.Title,
			Image:       detail.Image,
			Ingredients: ingredients,
		})
	}

	c.JSON(http.StatusOK, results)
}

type savedIDView struct {
	RecipeID string `json:"recipeId"`
}

// ListSavedIDs returns just the saved recipe ids, newest first.
func (h *Handler) ListSavedIDs(c *gin.Context) {
	var rows []model.SavedRecipe
	if err := h.DB.Where("user_id = ?", middlewares.UserID(c)).Order("created_at DESC").Find(&rows).Error; err != nil {
		respondError(c, errInternal("Failed to load saved IDs", err))
		return
	}

	ids := make([]savedIDView, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, savedIDView{RecipeID: row.RecipeID})
	}
	c.JSON(http.StatusOK, ids)
}

// DeleteSaved removes a saved recipe by id. Explicitly idempotent: deleting a
// recipe that was never saved succeeds with a zero count.
func (h *Handler) DeleteSaved(c *gin.Context) {
	result := h.DB.Where("user_id = ? AND recipe_id = ?", middlewares.UserID(c), c.Param("recipeId")).
		Delete(&model.SavedRecipe{})
	if result.Error != nil {
		respondError(c, errInternal("Failed to remove saved recipe", result.Error))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": result.RowsAffected})
}

type unsaveRequest struct {
	RecipeID string `json:"recipeId"`
}

// Unsave removes a saved recipe via request body, kept for clients that
// cannot issue DELETE. Idempotent like DeleteSaved.
func (h *Handler) Unsave(c *gin.Context) {
	var req unsaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == "" {
		respondError(c, errValidation("recipeId required"))
		return
	}

	if err := h.DB.Where("user_id = ? AND recipe_id = ?", middlewares.UserID(c), req.RecipeID).
		Delete(&model.SavedRecipe{}).Error; err != nil {
		respondError(c, errInternal("Failed to remove recipe", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
