package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/auth"
	"github.com/plateful/plateful/server/handler"
	"github.com/plateful/plateful/server/middlewares"
	"github.com/plateful/plateful/utils/dotenv"
	Flag "github.com/plateful/plateful/utils/flag"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

// NewRouter assembles the gin engine: CORS for the configured browser origin,
// static serving of uploaded images, the public routes and the bearer-gated
// route group.
func NewRouter(h *handler.Handler, tokens *auth.TokenManager, allowedOrigin string) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{allowedOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	if dotenv.IsProdEnv() {
		router.Use(gintrace.Middleware(*Flag.ServiceName))
	}

	router.Static("/uploads", h.UploadDir)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)

	api.GET("/recipes/search", h.SearchRecipes)
	api.GET("/recipes/random", h.RandomRecipes)
	api.GET("/recipes/macrosByTitle", h.MacrosByTitle)
	api.GET("/recipes/:id/ingredients", h.RecipeIngredients)
	api.GET("/recipes/themealdb/details/:id", h.MealDetails)
	api.GET("/recipes/themealdb/categories", h.MealCategories)
	api.GET("/recipes/themealdb/random", h.RandomMeals)
	api.GET("/recipes/themealdb/search", h.SearchMeals)

	api.GET("/posts", h.ListPosts)
	api.GET("/posts/:postId/comments", h.ListComments)

	authed := api.Group("", middlewares.RequireAuth(tokens))

	authed.GET("/me", h.Me)
	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpsertProfile)

	authed.POST("/recipes/save", h.SaveRecipe)
	authed.GET("/recipes/saved", h.ListSaved)
	authed.GET("/recipes/saved/ids", h.ListSavedIDs)
	authed.DELETE("/recipes/saved/:recipeId", h.DeleteSaved)
	authed.POST("/recipes/unsave", h.Unsave)

	authed.GET("/posts/mine", h.MyPosts)
	authed.POST("/posts", h.CreatePost)
	authed.DELETE("/posts/:id", h.DeletePost)
	authed.POST("/posts/:postId/like", h.ToggleLike)
	authed.POST("/posts/:postId/comments", h.CreateComment)

	return router
}
