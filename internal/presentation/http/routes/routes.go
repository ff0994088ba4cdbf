package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tablewise/tablewise-api/internal/config"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/internal/presentation/http/handler"
	"github.com/tablewise/tablewise-api/internal/presentation/http/middleware"
	"github.com/tablewise/tablewise-api/pkg/utils"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Menu        *handler.MenuHandler
	Table       *handler.TableHandler
	Order       *handler.OrderHandler
	Payment     *handler.PaymentHandler
	Webhook     *handler.WebhookHandler
	Reservation *handler.ReservationHandler
	Purchase    *handler.PurchaseHandler
	Tax         *handler.TaxHandler
	Buzzer      *handler.BuzzerHandler
	Dashboard   *handler.DashboardHandler
}

// Deps carries the cross-cutting dependencies the router needs besides the
// handlers themselves.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo repository.IdempotencyRepository
}

// Setup configures all application routes
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	registerAuthRoutes(v1, h.Auth)
	registerWebhookRoutes(v1, h.Webhook, deps.Cfg.Webhook.PaymentSecret)

	// Guest call buttons carry no credentials, they are raised from devices
	// on the tables themselves.
	v1.POST("/buzzer", h.Buzzer.Raise)

	// Protected routes
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
	rateLimiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
	rateLimiter := middleware.NewClientRateLimiter(rateLimiterCfg)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	protected.Use(rateLimiter.Middleware())

	registerUserRoutes(protected, h.User, h.Auth)
	registerMenuRoutes(protected, h.Menu)
	registerTableRoutes(protected, h.Table)
	registerOrderRoutes(protected, h.Order, h.Payment, deps.IdempotencyRepo)
	registerReservationRoutes(protected, h.Reservation)
	registerPurchaseRoutes(protected, h.Purchase)
	registerTaxRoutes(protected, h.Tax)
	registerBuzzerRoutes(protected, h.Buzzer)
	registerDashboardRoutes(protected, h.Dashboard)

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, h *handler.AuthHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/google", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
	}
}

func registerWebhookRoutes(rg *gin.RouterGroup, h *handler.WebhookHandler, secret string) {
	webhooks := rg.Group("/webhooks")
	webhooks.Use(middleware.VerifyWebhookSignature(secret))
	{
		webhooks.POST("/payments", h.PaymentEvent)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *handler.UserHandler, auth *handler.AuthHandler) {
	rg.GET("/auth/me", auth.Me)
	rg.PUT("/auth/password", h.ChangePassword)

	users := rg.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

func registerMenuRoutes(rg *gin.RouterGroup, h *handler.MenuHandler) {
	menu := rg.Group("/menu")
	{
		menu.GET("/categories", h.ListCategories)
		menu.GET("/items", h.ListItems)
		menu.GET("/items/:id", h.GetItem)

		manage := menu.Group("")
		manage.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
		{
			manage.POST("/categories", h.CreateCategory)
			manage.PUT("/categories/:id", h.UpdateCategory)
			manage.DELETE("/categories/:id", h.DeleteCategory)
			manage.POST("/items", h.CreateItem)
			manage.PUT("/items/:id", h.UpdateItem)
			manage.DELETE("/items/:id", h.DeleteItem)
		}
	}
}

func registerTableRoutes(rg *gin.RouterGroup, h *handler.TableHandler) {
	tables := rg.Group("/tables")
	{
		tables.GET("", h.List)
		tables.GET("/:id", h.Get)
		tables.PUT("/:id/status", h.UpdateStatus)

		manage := tables.Group("")
		manage.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
		{
			manage.POST("", h.Create)
			manage.PUT("/:id/waiter", h.AssignWaiter)
			manage.DELETE("/:id", h.Delete)
		}
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, h *handler.OrderHandler, payments *handler.PaymentHandler, idempotencyRepo repository.IdempotencyRepository) {
	orders := rg.Group("/orders")
	{
		orders.POST("", middleware.Idempotency(idempotencyRepo), h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/items/:itemId/status", h.UpdateItemStatus)
		orders.PUT("/:id/cancel", h.Cancel)

		orders.POST("/:id/payments", middleware.Idempotency(idempotencyRepo), payments.Record)
		orders.GET("/:id/payments", payments.List)
	}

	refunds := rg.Group("/payments")
	refunds.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleCashier))
	{
		refunds.POST("/:paymentId/refund", payments.Refund)
	}
}

func registerReservationRoutes(rg *gin.RouterGroup, h *handler.ReservationHandler) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("", h.List)
		reservations.GET("/:id", h.Get)
		reservations.PUT("/:id/seat", h.Seat)
		reservations.PUT("/:id/complete", h.Complete)
		reservations.PUT("/:id/cancel", h.Cancel)
	}
}

func registerPurchaseRoutes(rg *gin.RouterGroup, h *handler.PurchaseHandler) {
	purchases := rg.Group("/purchases")
	purchases.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.Get)
		purchases.PUT("/:id/approve", h.Approve)
		purchases.PUT("/:id/cancel", h.Cancel)
		purchases.DELETE("/:id", h.Delete)
	}
}

func registerTaxRoutes(rg *gin.RouterGroup, h *handler.TaxHandler) {
	tax := rg.Group("/tax")
	tax.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		tax.POST("/periods", h.CreatePeriod)
		tax.GET("/periods", h.ListPeriods)
		tax.GET("/periods/:id", h.GetPeriod)
		tax.POST("/periods/:id/return", h.GenerateReturn)
		tax.GET("/periods/:id/return", h.GetReturn)
		tax.POST("/periods/:id/return/submit", h.SubmitReturn)
		tax.GET("/periods/:id/return/export", h.ExportReturn)
	}
}

func registerBuzzerRoutes(rg *gin.RouterGroup, h *handler.BuzzerHandler) {
	buzzer := rg.Group("/buzzer")
	{
		buzzer.GET("/active", h.ListActive)
		buzzer.PUT("/:id/ack", h.Acknowledge)
	}
}

func registerDashboardRoutes(rg *gin.RouterGroup, h *handler.DashboardHandler) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		dashboard.GET("/stats", h.Stats)
	}
}
