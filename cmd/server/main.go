package main

import (
	"log"
	"net/http"
	"os"

	_ "hsavault/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hsavault/internal/auth"
	"hsavault/internal/cache"
	"hsavault/internal/config"
	"hsavault/internal/db"
	"hsavault/internal/handler"
	"hsavault/internal/model"
	"hsavault/internal/repository"
	"hsavault/internal/router"
	"hsavault/internal/service"
)

// @title HSA Vault API
// @version 1.0
// @description Demo Health Savings Account service: registration, deposits, virtual cards, and expense authorization against the qualified medical-expense table.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Deposit{},
			&model.Transaction{},
			&model.Card{},
			&model.Account{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Card{},
		&model.Transaction{},
		&model.Deposit{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	txnRepo := repository.NewTransactionRepository(gormDB)
	depositRepo := repository.NewDepositRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services; one locker serializes balance mutations per account
	locks := service.NewAccountLocker()
	authService := service.NewAuthService(userRepo, accountRepo, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo, depositRepo, txnRepo, cacheClient, locks)
	cardService := service.NewCardService(accountRepo, cardRepo, locks)
	txnService := service.NewTransactionService(accountRepo, cardRepo, txnRepo, cacheClient, locks)
	simulator := service.NewSimulator(txnService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	cardHandler := handler.NewCardHandler(cardService)
	txnHandler := handler.NewTransactionHandler(txnService, simulator)
	categoryHandler := handler.NewCategoryHandler()

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		accountHandler,
		cardHandler,
		txnHandler,
		categoryHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
