package main

import (
	"log"

	"storefront-api/internal/cache"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET environment variables are required")
	}

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	store, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatal("could not connect to Redis:", err)
	}
	defer store.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, db, store, cfg)

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
