package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hsavault/internal/cache"
	"hsavault/internal/config"
	"hsavault/internal/db"
	"hsavault/internal/model"
	"hsavault/internal/repository"
	"hsavault/internal/service"
)

const (
	demoEmail    = "demo@hsavault.dev"
	demoPassword = "demo-password"
)

var openingDeposits = []string{"250.00", "750.00"}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	log.Printf("Opened database %s", cfg.SQLitePath)

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Card{},
		&model.Transaction{},
		&model.Deposit{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	txnRepo := repository.NewTransactionRepository(gormDB)
	depositRepo := repository.NewDepositRepository(gormDB)

	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, demoEmail); err == nil && existing != nil {
		log.Printf("Demo user already seeded (id %s), nothing to do", existing.ID)
		return
	} else if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check demo user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        demoEmail,
		PasswordHash: string(hashed),
		FirstName:    "Demo",
		LastName:     "User",
	}
	account := &model.Account{
		ID:      uuid.New(),
		UserID:  user.ID,
		Balance: decimal.Zero,
	}

	err = accountRepo.WithTransaction(ctx, func(tx interface{}) error {
		if err := userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return accountRepo.CreateTx(ctx, tx, account)
	})
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s with account %s", user.ID, account.ID)

	locks := service.NewAccountLocker()
	accountService := service.NewAccountService(accountRepo, depositRepo, txnRepo, (*cache.Client)(nil), locks)
	cardService := service.NewCardService(accountRepo, cardRepo, locks)

	for _, raw := range openingDeposits {
		amount := decimal.RequireFromString(raw)
		if _, _, err := accountService.Deposit(ctx, user.ID, amount); err != nil {
			log.Fatalf("Failed to seed deposit of %s: %v", raw, err)
		}
		log.Printf("Seeded deposit of %s", raw)
	}

	card, err := cardService.Issue(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to issue demo card: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Login: %s / %s", demoEmail, demoPassword)
	log.Printf("  - User ID: %s", user.ID)
	log.Printf("  - Card number: %s (exp %s)", card.CardNumber, card.ExpiryDate)
}
