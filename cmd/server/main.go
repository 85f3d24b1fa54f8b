package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"gameaccount_store/internal/config" // Custom package for configuration
	"gameaccount_store/internal/metrics"
	"gameaccount_store/internal/server"

	"github.com/gin-gonic/gin"                       // Gin web framework
	"github.com/prometheus/client_golang/prometheus" // Metrics registry
	"github.com/redis/go-redis/v9"                   // Redis client
	"github.com/sirupsen/logrus"                     // Logrus for structured logging
	"gorm.io/driver/mysql"                           // MySQL driver for GORM
	"gorm.io/gorm"                                   // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the router with all services wired
	r := server.NewRouter(server.Deps{
		DB:        db,
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		Metrics:   metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
