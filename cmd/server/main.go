// Package main is the entry point for the API server. It loads
// configuration, connects Postgres and Redis, wires the service graph and
// starts the HTTP listener.
package main

import (
	"context"
	"log"
	"time"

	"github.com/YhormT/kelis-backend/internal/config"
	"github.com/YhormT/kelis-backend/internal/middleware"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/cache"
	"github.com/YhormT/kelis-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	store := repositories.NewStore(repositories.DB)

	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("failed to close database connection: %v", err)
				}
			}
		}
	}()

	// Redis is optional; the query layer degrades to uncached reads.
	var cacheSvc *cache.Service
	redisClient := cache.NewClient(&cache.Config{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	} else {
		cacheSvc = cache.NewService(redisClient, config.GetDurationEnv("CACHE_TTL", 30*time.Second))
		if err := cacheSvc.FlushAll(context.Background()); err != nil {
			log.Printf("failed to flush redis cache: %v", err)
		}
		defer func() {
			if err := cacheSvc.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
		}()
	}

	app := fiber.New()

	app.Use(middleware.RequestID)

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestID}\n",
	}))

	// Credential endpoints are rate limited per client IP.
	for _, path := range []string{"/api/login", "/api/register"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "too many requests, please try again later",
				})
			},
		}))
	}

	routes.SetupRoutes(app, store, cacheSvc)

	port := config.GetEnv("PORT", "8080")
	log.Printf("server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
