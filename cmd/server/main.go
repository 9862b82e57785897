package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/auth"
	"github.com/plateful/plateful/provider"
	"github.com/plateful/plateful/server"
	"github.com/plateful/plateful/server/handler"
	"github.com/plateful/plateful/utils"
	"github.com/plateful/plateful/utils/dotenv"
	Flag "github.com/plateful/plateful/utils/flag"
	Logger "github.com/plateful/plateful/utils/log"
)

const (
	defaultPort      = "3001"
	defaultOrigin    = "http://localhost:3000"
	defaultUploadDir = "uploads"

	// Development-only fallback. Deployments must set JWT_SECRET; this value
	// must never reach production.
	devJWTSecret = "dev_secret_change_me"
)

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	flag.Parse()
	defer cleanup()

	if !*Flag.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	utils.InitTracer()
	utils.InitProfiler()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	uploadDir := env("UPLOAD_DIR", defaultUploadDir)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		Logger.Log.Fatal("cannot create upload dir: ", err)
	}

	secret := env("JWT_SECRET", "")
	if secret == "" {
		if dotenv.IsProdEnv() {
			Logger.Log.Fatal("JWT_SECRET must be set in production")
		}
		secret = devJWTSecret
	}
	tokens := auth.NewTokenManager(secret)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	spoon := provider.NewSpoonacular(httpClient, provider.SpoonacularBaseURL, os.Getenv("SPOON_API_KEY"))
	mealdb := provider.NewMealDB(httpClient, provider.MealDBBaseURL)

	h := handler.New(db, tokens, auth.NewPasswordHasher(), spoon, mealdb, uploadDir)
	router := server.NewRouter(h, tokens, env("ALLOWED_ORIGIN", defaultOrigin))

	Logger.Log.Info("api server starts up")
	router.Run(":" + env("PORT", defaultPort))
}
