package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hsavault/internal/model"
)

// TransactionRepository defines transaction log persistence operations. The
// log is append-only; there is no update path.
type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) error
	CreateTx(ctx context.Context, tx interface{}, txn *model.Transaction) error
	RecentByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]model.Transaction, error)
	SumQualifiedByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a transaction row.
func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// CreateTx appends a transaction row within a database transaction.
func (r *transactionRepository) CreateTx(ctx context.Context, tx interface{}, txn *model.Transaction) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(txn).Error
}

// RecentByAccountID returns the newest transactions for an account,
// newest-first.
func (r *transactionRepository) RecentByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// SumQualifiedByAccountID totals approved qualified expenses for an account.
func (r *transactionRepository) SumQualifiedByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("SUM(amount)").
		Where("account_id = ? AND is_medical_expense = ?", accountID, true).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
