package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/lpz8/Backend-splitwise-back/internal/cache"
	"github.com/lpz8/Backend-splitwise-back/internal/config"
	"github.com/lpz8/Backend-splitwise-back/internal/controllers"
	"github.com/lpz8/Backend-splitwise-back/internal/database"
	"github.com/lpz8/Backend-splitwise-back/internal/logging"
	"github.com/lpz8/Backend-splitwise-back/internal/middleware"
	"github.com/lpz8/Backend-splitwise-back/internal/repository"
	"github.com/lpz8/Backend-splitwise-back/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close() // Close connection when program exits
	slog.Info("connected to database")

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			slog.Warn("failed to connect to Redis, continuing without cache", "error", err)
			cacheClient = nil
		} else {
			slog.Info("connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	expenseService := service.NewExpenseService(
		expenseRepo,
		userRepo,
		cacheClient,
		time.Duration(cfg.CacheTTL)*time.Second,
	)

	// Initialize controllers
	userController := controllers.NewUserController(userService)
	expenseController := controllers.NewExpenseController(expenseService)

	router := newRouter(cfg, userController, expenseController)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func newRouter(cfg *config.Config, userController *controllers.UserController, expenseController *controllers.ExpenseController) *gin.Engine {
	// Unknown or wrongly-typed body fields are rejected at the boundary
	gin.EnableJsonDecoderDisallowUnknownFields()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	api := router.Group("")
	api.Use(rateLimiter.Limit())
	api.Use(middleware.Timeout(time.Duration(cfg.RequestTimeout) * time.Second))
	{
		api.GET("/users", userController.ListUsers)
		api.POST("/users", userController.CreateUser)

		api.GET("/expenses", expenseController.ListExpenses)
		api.POST("/expenses", expenseController.CreateExpense)
		api.GET("/expenses/:id", expenseController.GetExpense)
		api.PUT("/expenses/:id", expenseController.UpdateExpense)
		api.DELETE("/expenses/:id", expenseController.DeleteExpense)
	}

	return router
}
