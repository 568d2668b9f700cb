package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hsavault/internal/model"
)

// DepositRepository defines deposit persistence operations.
type DepositRepository interface {
	CreateTx(ctx context.Context, tx interface{}, deposit *model.Deposit) error
	SumByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

type depositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a new deposit repository.
func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &depositRepository{db: db}
}

// CreateTx appends a deposit row within a database transaction. Deposits are
// always committed together with the balance update, so there is no
// standalone Create.
func (r *depositRepository) CreateTx(ctx context.Context, tx interface{}, deposit *model.Deposit) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(deposit).Error
}

// SumByAccountID totals all deposits for an account.
func (r *depositRepository) SumByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Deposit{}).
		Select("SUM(amount)").
		Where("account_id = ?", accountID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
