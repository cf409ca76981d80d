package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"andhara-backend/internal/auth"
	"andhara-backend/internal/cache"
	"andhara-backend/internal/config"
	"andhara-backend/internal/database"
	"andhara-backend/internal/db"
	"andhara-backend/internal/handlers"
	"andhara-backend/internal/health"
	h "andhara-backend/internal/http"
	"andhara-backend/internal/mailer"
	"andhara-backend/internal/middleware"
	"andhara-backend/internal/repositories"
	"andhara-backend/internal/services"
	"andhara-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional: without it logins fall back to bcrypt and product
	// reads go straight to the database.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	branchRepo := repositories.NewBranchRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	followUpRepo := repositories.NewFollowUpRepository(pool)

	// Middleware
	policy := auth.NewAdminEmailPolicy(cfg.Admin.Email)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo, policy)
	corsMiddleware := middleware.NewCORS(cfg)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo, branchRepo)
	productService := services.NewProductService(productRepo, stockRepo, branchRepo)
	purchaseService := services.NewPurchaseService(customerRepo, branchRepo, productRepo, stockRepo, purchaseRepo, followUpRepo)
	receiptService := services.NewReceiptService(purchaseService)
	followUpService := services.NewFollowUpService(followUpRepo, customerRepo)
	emailService := services.NewEmailService(followUpRepo, mailer.NewSMTPMailer(cfg), healthChecker, cfg)

	if err := emailService.StartScheduler(); err != nil {
		log.Fatalf("Failed to start email scheduler: %v", err)
	}
	defer emailService.StopScheduler()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, receiptService)
	followUpHandler := handlers.NewFollowUpHandler(followUpService)
	emailHandler := handlers.NewEmailHandler(emailService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		customerHandler,
		productHandler,
		purchaseHandler,
		followUpHandler,
		emailHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
