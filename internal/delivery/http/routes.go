package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bourbonvault/backend/config"
	"github.com/bourbonvault/backend/internal/logger"
	"github.com/bourbonvault/backend/internal/metrics"
)

// RouterDeps carries the cross-cutting pieces the router wires in. Metrics and
// Auth are optional; without Auth the /me routes are not mounted.
type RouterDeps struct {
	Log     logger.Logger
	Metrics *metrics.Metrics
	Auth    *TokenAuthority
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, deps RouterDeps) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Log
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.PerIP), deps.Metrics))
	}
	{
		v1.GET("/bourbons", handler.ListBourbons)
		v1.GET("/bourbons/:id", handler.GetBourbon)
		v1.GET("/flavors", handler.ListFlavors)
		v1.GET("/categories", handler.ListCategories)
		v1.GET("/markups", handler.GetMarkups)
		v1.POST("/recommendations/preferences", handler.RecommendByPreferences)

		if handler.svc.Compare != nil {
			compare := v1.Group("/compare", SessionMiddleware())
			{
				compare.GET("", handler.GetCompare)
				compare.DELETE("", handler.ClearCompare)
				compare.POST("/:bourbonId", handler.AddCompare)
				compare.DELETE("/:bourbonId", handler.RemoveCompare)
				compare.POST("/:bourbonId/toggle", handler.ToggleCompare)
			}
		}

		if handler.svc.SessionFavorites != nil {
			favorites := v1.Group("/session/favorites", SessionMiddleware())
			{
				favorites.GET("", handler.GetSessionFavorites)
				favorites.DELETE("", handler.ClearSessionFavorites)
				favorites.POST("/:bourbonId", handler.AddSessionFavorite)
				favorites.DELETE("/:bourbonId", handler.RemoveSessionFavorite)
				favorites.POST("/:bourbonId/toggle", handler.ToggleSessionFavorite)
			}
		}

		if deps.Auth != nil {
			registerUserRoutes(v1.Group("/me", AuthMiddleware(deps.Auth)), handler)
		}
	}

	return router
}

func registerUserRoutes(me *gin.RouterGroup, handler *Handler) {
	me.GET("/profile", handler.GetProfile)
	me.PUT("/profile", handler.UpdateProfile)
	me.GET("/dashboard", handler.GetDashboard)

	notes := me.Group("/notes")
	{
		notes.GET("", handler.ListNotes)
		notes.POST("", handler.CreateNote)
		notes.GET("/:id", handler.GetNote)
		notes.PUT("/:id", handler.UpdateNote)
		notes.DELETE("/:id", handler.DeleteNote)
	}

	favorites := me.Group("/favorites")
	{
		favorites.GET("", handler.ListFavorites)
		favorites.POST("/:bourbonId", handler.AddFavorite)
		favorites.DELETE("/:bourbonId", handler.RemoveFavorite)
		favorites.POST("/:bourbonId/toggle", handler.ToggleFavorite)
	}

	collection := me.Group("/collection")
	{
		collection.GET("", handler.ListCollection)
		collection.POST("", handler.AddCollectionItem)
		collection.GET("/stats", handler.GetCollectionStats)
		collection.PUT("/:id", handler.UpdateCollectionItem)
		collection.DELETE("/:id", handler.RemoveCollectionItem)
	}

	recommendations := me.Group("/recommendations")
	{
		recommendations.GET("/history", handler.RecommendByHistory)
		recommendations.GET("/top-rated", handler.RecommendTopRated)
		recommendations.GET("/profile", handler.RecommendForProfile)
	}
}
