package main

import (
	"context"
	"os"
	"time"

	"astrokart/config"
	"astrokart/controllers"
	"astrokart/database"
	"astrokart/middleware"
	"astrokart/repository"
	"astrokart/routes"
	"astrokart/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	config.LoadEnv()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET not set")
	}

	ctx := context.Background()

	db, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	logger.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	secret := []byte(cfg.JWTSecret)
	blacklist := repository.NewTokenBlacklist(rdb)

	catalogRepo := repository.NewProductRepository(db.Products)
	orderRepo := repository.NewOrderRepository(db.Orders)
	orderService := services.NewOrderService(catalogRepo, orderRepo, cfg.OrderStrictResolution, logger)

	handlers := routes.Handlers{
		Auth:     controllers.NewAuthController(db.Users, blacklist, secret, logger),
		Products: controllers.NewProductController(db.Products, logger),
		Home:     controllers.NewHomeController(db.HomeRows, db.Products, logger),
		Orders:   controllers.NewOrderController(orderService, logger),
		Reviews:  controllers.NewReviewController(db.Reviews, logger),
		Wishlist: controllers.NewWishlistController(db.Wishlist, db.Products, logger),

		AdminProducts: controllers.NewAdminProductController(db.Products, logger),
		AdminOrders:   controllers.NewAdminOrderController(db.Orders, logger),
		AdminUsers:    controllers.NewAdminUserController(db.Users, logger),
		AdminHome:     controllers.NewAdminHomeController(db.HomeRows, logger),
	}

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestIDMiddleware(), middleware.LoggerMiddleware(logger), gin.Recovery())
	routes.RegisterRoutes(r, handlers, secret, blacklist)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
