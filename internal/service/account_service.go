package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hsavault/internal/cache"
	"hsavault/internal/errors"
	"hsavault/internal/model"
	"hsavault/internal/repository"
)

const accountCacheTTL = 5 * time.Minute

// Summary aggregates an account's ledger for the dashboard.
type Summary struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
	TotalDeposits  decimal.Decimal `json:"total_deposits"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
}

// AccountService handles balance reads and deposits.
type AccountService interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	// Deposit credits the account. The deposit row and the balance update
	// commit in one transaction; no Transaction log row is written.
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Deposit, decimal.Decimal, error)
	// SimulateDeposit behaves like Deposit but additionally mirrors the
	// contribution into the transaction log, the way the simulated bank
	// flow surfaces it on the dashboard.
	SimulateDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Deposit, decimal.Decimal, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
	depositRepo repository.DepositRepository
	txnRepo     repository.TransactionRepository
	cache       *cache.Client
	locks       *AccountLocker
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo repository.AccountRepository,
	depositRepo repository.DepositRepository,
	txnRepo repository.TransactionRepository,
	cacheClient *cache.Client,
	locks *AccountLocker,
) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		depositRepo: depositRepo,
		txnRepo:     txnRepo,
		cache:       cacheClient,
		locks:       locks,
	}
}

func accountCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("account:user:%s", userID.String())
}

// GetByUserID retrieves the account for a user with cache-aside reads.
func (s *accountService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	if data, _ := s.cache.Get(ctx, accountCacheKey(userID)); data != nil {
		var cached model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(account); err == nil {
		_ = s.cache.Set(ctx, accountCacheKey(userID), payload, accountCacheTTL)
	}
	return account, nil
}

// GetSummary returns the stored balance alongside totals recomputed from the
// deposit and transaction logs.
func (s *accountService) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	account, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDeposits, err := s.depositRepo.SumByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("sum deposits: %w", err)
	}
	totalExpenses, err := s.txnRepo.SumQualifiedByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	return &Summary{
		CurrentBalance: account.Balance,
		TotalDeposits:  totalDeposits,
		TotalExpenses:  totalExpenses,
	}, nil
}

// Deposit credits the account without a mirrored transaction row.
func (s *accountService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Deposit, decimal.Decimal, error) {
	return s.deposit(ctx, userID, amount, false)
}

// SimulateDeposit credits the account and mirrors the contribution into the
// transaction log.
func (s *accountService) SimulateDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Deposit, decimal.Decimal, error) {
	return s.deposit(ctx, userID, amount, true)
}

func (s *accountService) deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, mirrored bool) (*model.Deposit, decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, errors.ErrInvalidAmount
	}

	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, decimal.Zero, errors.ErrAccountNotFound
		}
		return nil, decimal.Zero, err
	}

	mutex := s.locks.Lock(account.ID)
	mutex.Lock()
	defer mutex.Unlock()

	// Re-read under the lock so concurrent credits never work off a stale
	// balance.
	account, err = s.accountRepo.FindByID(ctx, account.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	deposit := &model.Deposit{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    amount,
	}
	newBalance := account.Balance.Add(amount)

	err = s.accountRepo.WithTransaction(ctx, func(tx interface{}) error {
		if err := s.depositRepo.CreateTx(ctx, tx, deposit); err != nil {
			return err
		}
		if mirrored {
			mirror := &model.Transaction{
				ID:               uuid.New(),
				AccountID:        account.ID,
				Amount:           amount,
				Merchant:         "Direct Contribution",
				Category:         "DEPOSIT",
				IsMedicalExpense: false,
				Type:             model.TransactionTypeDeposit,
			}
			if err := s.txnRepo.CreateTx(ctx, tx, mirror); err != nil {
				return err
			}
		}
		return s.accountRepo.UpdateBalanceTx(ctx, tx, account.ID, newBalance)
	})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("apply deposit: %w", err)
	}

	_ = s.cache.Delete(ctx, accountCacheKey(userID))
	return deposit, newBalance, nil
}
