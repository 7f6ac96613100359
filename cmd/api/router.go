package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/middleware"
	"library-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.RateLimit(20, 40),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupBookRoutes(api, c)
		setupAuthorRoutes(api, c)

		api.GET("/stats/", c.StatsHandler.Stats)
		api.GET("/search/", c.BookHandler.SearchBooks)
	}

	return router
}

func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/register/", c.UserHandler.Register)
		auth.POST("/login/", c.UserHandler.Login)
	}
}

func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	requireAuth := middleware.RequireAuth(c.JWTManager)
	authOrRead := middleware.AuthOrReadOnly(c.JWTManager)

	books := api.Group("/books")
	{
		// Single-purpose endpoints. Reads are anonymous; every write is
		// gated before any request data is inspected.
		books.GET("/", c.BookHandler.ListBooks)
		books.GET("/:id/", c.BookHandler.GetBook)
		books.POST("/create/", requireAuth, c.BookHandler.CreateBook)
		books.PUT("/update/:id/", requireAuth, c.BookHandler.UpdateBook)
		books.PATCH("/update/:id/", requireAuth, c.BookHandler.UpdateBook)
		books.DELETE("/delete/:id/", requireAuth, c.BookHandler.DeleteBook)

		// Combined endpoints: one path per resource, method picks the
		// operation.
		books.GET("/combined/", c.BookHandler.ListBooks)
		books.POST("/combined/", authOrRead, c.BookHandler.CreateBook)
		books.GET("/:id/combined/", c.BookHandler.GetBook)
		books.PUT("/:id/combined/", authOrRead, c.BookHandler.UpdateBook)
		books.PATCH("/:id/combined/", authOrRead, c.BookHandler.UpdateBook)
		books.DELETE("/:id/combined/", authOrRead, c.BookHandler.DeleteBook)
	}
}

func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	authors := api.Group("/authors")
	{
		authors.GET("/", c.AuthorHandler.ListAuthors)
		authors.GET("/analytics/", c.AuthorHandler.Analytics)
		authors.GET("/:id/", c.AuthorHandler.GetAuthor)
	}
}

// healthCheckHandler reports liveness plus the state of the two backing
// stores.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "unavailable"
		}
		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "unavailable"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "ok" || cacheStatus != "ok" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
