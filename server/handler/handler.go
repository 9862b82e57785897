package handler

import (
	"github.com/jinzhu/copier"
	"github.com/plateful/plateful/auth"
	"github.com/plateful/plateful/model"
	"github.com/plateful/plateful/provider"
	Logger "github.com/plateful/plateful/utils/log"
	"gorm.io/gorm"
)

// Handler carries every dependency the route layer needs. It serves as
// dependency injection for the app: construct once in main (or tests) and
// register its methods as gin handlers.
type Handler struct {
	DB        *gorm.DB
	Tokens    *auth.TokenManager
	Hasher    *auth.PasswordHasher
	Spoon     *provider.Spoonacular
	MealDB    *provider.MealDB
	UploadDir string
}

func New(db *gorm.DB, tokens *auth.TokenManager, hasher *auth.PasswordHasher, spoon *provider.Spoonacular, mealdb *provider.MealDB, uploadDir string) *Handler {
	return &Handler{
		DB:        db,
		Tokens:    tokens,
		Hasher:    hasher,
		Spoon:     spoon,
		MealDB:    mealdb,
		UploadDir: uploadDir,
	}
}

// UserSummary is the client-facing shape of a user in auth responses.
type UserSummary struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

func userSummary(user *model.User) UserSummary {
	var summary UserSummary
	if err := copier.Copy(&summary, user); err != nil {
		Logger.Log.Error("copying user summary: ", err)
	}
	return summary
}
