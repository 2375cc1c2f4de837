// internal/handler/router.go
package handler

import (
	"context"
	"net/http"

	"rewards-tracker/internal/auth"
	"rewards-tracker/internal/middleware"
	"rewards-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Rewards RewardSummarizer
	Store   storage.TransactionStorage
	Tokens  *auth.TokenService
	APIKey  string
	// DB is optional; when set /health also checks it.
	DB Pinger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(deps.Tokens, deps.APIKey)
	router.POST("/api/v1/login", authHandler.Login)

	rewardsHandler := NewRewardsHandler(deps.Rewards, deps.Store)
	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/rewards/:customerId", rewardsHandler.GetRewards)
		v1.GET("/customers/:customerId/transactions", rewardsHandler.ListTransactions)
		v1.POST("/transactions", rewardsHandler.CreateTransaction)
		v1.DELETE("/transactions/:id", rewardsHandler.DeleteTransaction)
	}

	return router
}
