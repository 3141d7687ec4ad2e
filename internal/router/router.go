package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/fridgechef/backend/internal/api"
	"github.com/fridgechef/backend/internal/middleware"
)

// Handlers bundles everything the router wires up. RateLimit may be nil (it
// is skipped in tests without Redis).
type Handlers struct {
	Auth      *api.AuthHandler
	Analyze   *api.AnalyzeHandler
	Generate  *api.GenerateHandler
	Recipes   *api.RecipeHandler
	Profile   *api.ProfileHandler
	Health    *api.HealthHandler
	Sessions  middleware.SessionResolver
	RateLimit *middleware.RateLimiter

	SessionCookieName string
	UploadMaxBytes    int64
}

// New configures the application routes.
func New(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	router.Use(middleware.Session(h.Sessions, h.SessionCookieName))

	root := router.Group("/api")

	root.GET("/health", h.Health.Health)

	// Upstream-model routes; open to anonymous users, rate limited.
	model := root.Group("")
	if h.RateLimit != nil {
		model.Use(h.RateLimit.Middleware())
	}
	{
		model.POST("/analyze-image", middleware.BodySizeLimit(h.UploadMaxBytes), h.Analyze.AnalyzeImage)
		model.POST("/generate-recipe", h.Generate.GenerateRecipe)
	}

	auth := root.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	// Saved recipes and profile need a logged-in user.
	protected := root.Group("")
	protected.Use(middleware.RequireUser())
	{
		protected.GET("/recipes", h.Recipes.ListRecipes)
		protected.POST("/recipes", h.Recipes.SaveRecipe)
		protected.PATCH("/recipes/:id", h.Recipes.UpdateRecipe)
		protected.DELETE("/recipes/:id", h.Recipes.DeleteRecipe)
		protected.PATCH("/profile", h.Profile.UpdateProfile)
	}

	return router
}
