package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/config"
	"github.com/tablewise/tablewise-api/internal/infrastructure/database"
	"github.com/tablewise/tablewise-api/internal/infrastructure/repository"
	"github.com/tablewise/tablewise-api/internal/presentation/http/handler"
	"github.com/tablewise/tablewise-api/internal/presentation/http/routes"
	"github.com/tablewise/tablewise-api/pkg/email"
	"github.com/tablewise/tablewise-api/pkg/oauth"
	"github.com/tablewise/tablewise-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuCategoryRepo := repository.NewMenuCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	taxPeriodRepo := repository.NewTaxPeriodRepository(db)
	vatReturnRepo := repository.NewVATReturnRepository(db)
	buzzerRepo := repository.NewBuzzerRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// External services
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})
	oauthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Application services
	authService := service.NewAuthService(userRepo, jwtManager, oauthService)
	userService := service.NewUserService(userRepo)
	menuService := service.NewMenuService(menuCategoryRepo, menuItemRepo)
	tableService := service.NewTableService(tableRepo, userRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, menuItemRepo, tableRepo, txManager, cfg.VAT.StandardRate)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, tableRepo, txManager)
	reservationService := service.NewReservationService(
		reservationRepo,
		tableRepo,
		txManager,
		emailService,
		cfg.App.RestaurantName,
		cfg.Reservation.ConflictBefore,
		cfg.Reservation.ConflictAfter,
	)
	purchaseService := service.NewPurchaseService(purchaseRepo)
	taxService := service.NewTaxService(
		taxPeriodRepo,
		vatReturnRepo,
		orderRepo,
		purchaseRepo,
		txManager,
		cfg.VAT.RegistrationNumber,
		cfg.App.RestaurantName,
	)
	buzzerService := service.NewBuzzerService(buzzerRepo, tableRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, oauthService),
		User:        handler.NewUserHandler(userService),
		Menu:        handler.NewMenuHandler(menuService),
		Table:       handler.NewTableHandler(tableService),
		Order:       handler.NewOrderHandler(orderService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Webhook:     handler.NewWebhookHandler(paymentService),
		Reservation: handler.NewReservationHandler(reservationService),
		Purchase:    handler.NewPurchaseHandler(purchaseService),
		Tax:         handler.NewTaxHandler(taxService),
		Buzzer:      handler.NewBuzzerHandler(buzzerService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Printf("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
