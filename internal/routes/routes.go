package routes

import (
	"time"

	"github.com/campusgoods/market-backend/internal/config"
	"github.com/campusgoods/market-backend/internal/handlers"
	"github.com/campusgoods/market-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	categoryHandler *handlers.CategoryHandler,
	noticeHandler *handlers.NoticeHandler,
	reportHandler *handlers.ReportHandler,
	notificationHandler *handlers.NotificationHandler,
	messageHandler *handlers.MessageHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit against credential guessing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/activate", authHandler.Activate)

	// Public browse surface
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Get("/products/:id/comments", productHandler.ListComments)
	api.Get("/categories", categoryHandler.List)
	api.Get("/notices", noticeHandler.ListActive)

	jwt := middleware.JWTProtected(cfg)

	// Profile
	api.Get("/users/me", jwt, userHandler.Me)
	api.Put("/users/me", jwt, userHandler.UpdateMe)
	api.Get("/users/:id", jwt, userHandler.Get)

	// Listings
	api.Post("/products", jwt, productHandler.Create)
	api.Put("/products/:id", jwt, productHandler.Update)
	api.Post("/products/:id/sold", jwt, productHandler.MarkSold)
	api.Post("/products/:id/comments", jwt, productHandler.AddComment)
	api.Post("/products/:id/favorite", jwt, productHandler.Favorite)
	api.Delete("/products/:id/favorite", jwt, productHandler.Unfavorite)
	api.Get("/favorites", jwt, productHandler.ListFavorites)

	// Reports — reporter side
	api.Post("/reports", jwt, reportHandler.Submit)
	api.Get("/reports", jwt, reportHandler.ListMine)
	api.Delete("/reports/:id", jwt, reportHandler.Cancel)

	// Notifications
	api.Get("/notifications", jwt, notificationHandler.List)
	api.Get("/notifications/unread-count", jwt, notificationHandler.UnreadCount)
	api.Put("/notifications/read-all", jwt, notificationHandler.MarkAllRead)
	api.Put("/notifications/:id/read", jwt, notificationHandler.MarkRead)
	api.Delete("/notifications/:id", jwt, notificationHandler.Delete)

	// Direct messages
	api.Post("/messages", jwt, messageHandler.Send)
	api.Get("/messages/unread-count", jwt, messageHandler.UnreadCount)
	api.Get("/messages/:userId", jwt, messageHandler.Conversation)

	// Moderation panel (JWT + admin role, re-verified against the DB)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/users/stats", adminHandler.UserStats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/role", adminHandler.ChangeUserRole)
	admin.Put("/users/:id/status", adminHandler.ChangeUserStatus)
	admin.Get("/products", adminHandler.ListProducts)
	admin.Put("/products/:id/remove", adminHandler.RemoveProduct)
	admin.Put("/products/:id/restore", adminHandler.RestoreProduct)
	admin.Delete("/products/:id", adminHandler.PurgeProduct)
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/reports/:id", adminHandler.ProcessReport)
	admin.Post("/notices", adminHandler.CreateNotice)
	admin.Put("/notices/:id", adminHandler.UpdateNotice)
	admin.Delete("/notices/:id", adminHandler.DeleteNotice)
	admin.Post("/categories", adminHandler.CreateCategory)
	admin.Put("/categories/:id", adminHandler.UpdateCategory)
	admin.Delete("/categories/:id", adminHandler.DeleteCategory)
}
