package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hsavault/internal/cache"
	"hsavault/internal/errors"
	"hsavault/internal/medical"
	"hsavault/internal/model"
	"hsavault/internal/repository"
)

const recentTransactionLimit = 5

// TransactionService authorizes card expenses against the account ledger.
type TransactionService interface {
	// Process runs the authorization pipeline: active card required, amount
	// must be positive, balance must cover the amount, and the category must
	// be a qualified medical expense. Every attempt past the card and amount
	// guards is logged, approved or declined; only approvals move the
	// balance. The returned status is one of the model.Status* strings.
	Process(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, merchant, category string) (*model.Transaction, decimal.Decimal, string, error)
	// Recent returns the newest transactions for the user, newest-first.
	Recent(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
}

type transactionService struct {
	accountRepo repository.AccountRepository
	cardRepo    repository.CardRepository
	txnRepo     repository.TransactionRepository
	cache       *cache.Client
	locks       *AccountLocker
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	accountRepo repository.AccountRepository,
	cardRepo repository.CardRepository,
	txnRepo repository.TransactionRepository,
	cacheClient *cache.Client,
	locks *AccountLocker,
) TransactionService {
	return &transactionService{
		accountRepo: accountRepo,
		cardRepo:    cardRepo,
		txnRepo:     txnRepo,
		cache:       cacheClient,
		locks:       locks,
	}
}

// Process authorizes one expense attempt.
func (s *transactionService) Process(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, merchant, category string) (*model.Transaction, decimal.Decimal, string, error) {
	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, decimal.Zero, "", errors.ErrAccountNotFound
		}
		return nil, decimal.Zero, "", err
	}

	card, err := s.cardRepo.FindActiveByAccountID(ctx, account.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// No ledger row for the no-card case.
			return nil, decimal.Zero, "", errors.ErrNoActiveCard
		}
		return nil, decimal.Zero, "", err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, "", errors.ErrInvalidAmount
	}

	mutex := s.locks.Lock(account.ID)
	mutex.Lock()
	defer mutex.Unlock()

	// Fresh balance under the lock; two concurrent authorizations must not
	// both spend the same funds.
	account, err = s.accountRepo.FindByID(ctx, account.ID)
	if err != nil {
		return nil, decimal.Zero, "", err
	}

	txn := &model.Transaction{
		ID:        uuid.New(),
		AccountID: account.ID,
		CardID:    &card.ID,
		Amount:    amount,
		Merchant:  merchant,
		Category:  category,
		Type:      model.TransactionTypeExpense,
	}

	if account.Balance.LessThan(amount) {
		txn.IsMedicalExpense = false
		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return nil, decimal.Zero, "", fmt.Errorf("log declined transaction: %w", err)
		}
		return txn, account.Balance, model.StatusDeclinedInsufficient, nil
	}

	if !medical.IsQualified(category) {
		txn.IsMedicalExpense = false
		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return nil, decimal.Zero, "", fmt.Errorf("log declined transaction: %w", err)
		}
		return txn, account.Balance, model.StatusDeclinedNonQualified, nil
	}

	// Approved: log row and balance debit commit as one unit.
	txn.IsMedicalExpense = true
	newBalance := account.Balance.Sub(amount)
	err = s.accountRepo.WithTransaction(ctx, func(tx interface{}) error {
		if err := s.txnRepo.CreateTx(ctx, tx, txn); err != nil {
			return err
		}
		return s.accountRepo.UpdateBalanceTx(ctx, tx, account.ID, newBalance)
	})
	if err != nil {
		return nil, decimal.Zero, "", fmt.Errorf("apply transaction: %w", err)
	}

	_ = s.cache.Delete(ctx, accountCacheKey(userID))
	return txn, newBalance, model.StatusApproved, nil
}

// Recent returns up to the five newest transactions for the user.
func (s *transactionService) Recent(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	return s.txnRepo.RecentByAccountID(ctx, account.ID, recentTransactionLimit)
}
