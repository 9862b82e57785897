package model

import "time"

/*

SavedRecipe is a relation of user saving an external recipe

UserID: user id
RecipeID: external recipe id (TheMealDB meal id), kept as string
CreatedAt: time when relation is created

The composite primary key enforces at most one row per (user, recipe) pair at
the storage level, so concurrent duplicate saves cannot race past an
application-side existence check.

*/

type SavedRecipe struct {
	UserID    string    `json:"userId" gorm:"primaryKey"`
	RecipeID  string    `json:"recipeId" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
