// Package routes wires handlers, services and middleware onto the Fiber app.
package routes

import (
	"github.com/YhormT/kelis-backend/internal/handlers"
	"github.com/YhormT/kelis-backend/internal/middleware"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/cache"
	"github.com/YhormT/kelis-backend/internal/services/ledger"
	"github.com/YhormT/kelis-backend/internal/services/order"
	"github.com/YhormT/kelis-backend/internal/services/topup"
	"github.com/YhormT/kelis-backend/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes builds the service graph over the store and registers every
// endpoint. cacheSvc may be nil when Redis is unavailable.
func SetupRoutes(app *fiber.App, store repositories.Store, cacheSvc *cache.Service) {
	ledgerService := ledger.NewService(store)
	orderService := order.NewService(store)
	topUpService := topup.NewService(store, topup.Config{})
	txService := transaction.NewService(store, cacheSvc)

	authHandler := handlers.NewAuthHandler(store)
	cartHandler := handlers.NewCartHandler(store)
	orderHandler := handlers.NewOrderHandler(orderService)
	topUpHandler := handlers.NewTopUpHandler(topUpService)
	txHandler := handlers.NewTransactionHandler(txService, ledgerService)
	smsHandler := handlers.NewSmsHandler(store)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/login", authHandler.Login)
	api.Post("/register", authHandler.Register)
	// SMS records arrive from the gateway before any user session exists.
	api.Post("/sms", smsHandler.Ingest)

	// Authenticated endpoints
	protected := api.Use(middleware.Auth)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Delete("/cart/items/:itemId", cartHandler.RemoveItem)
	protected.Put("/cart/mobile-number", cartHandler.SetMobileNumber)

	protected.Post("/orders", orderHandler.Submit)
	protected.Get("/orders/history", orderHandler.History)
	protected.Get("/orders/completed", orderHandler.Completed)
	protected.Get("/orders/:orderId", orderHandler.Get)

	protected.Post("/topups", topUpHandler.Create)
	protected.Post("/topups/verify-sms", topUpHandler.VerifySms)

	protected.Get("/transactions", txHandler.Mine)
	protected.Get("/transactions/summary", txHandler.Summary)

	// Admin endpoints
	admin := protected.Group("/admin", middleware.AdminOnly)

	admin.Get("/orders", orderHandler.List)
	admin.Get("/orders/stats", orderHandler.Stats)
	admin.Put("/orders/:orderId/status", orderHandler.Process)
	admin.Put("/orders/:orderId/items/status", orderHandler.UpdateItemsStatus)
	admin.Put("/order-items/:itemId/status", orderHandler.UpdateItemStatus)

	admin.Get("/topups", topUpHandler.List)
	admin.Put("/topups/:topupId/status", topUpHandler.UpdateStatus)

	admin.Get("/transactions", txHandler.All)
	admin.Post("/loans/adjust", txHandler.LoanAdjust)
}
