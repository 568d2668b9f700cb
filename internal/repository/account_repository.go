package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hsavault/internal/model"
)

// AccountRepository defines HSA account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	CreateTx(ctx context.Context, tx interface{}, account *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error)
	UpdateBalanceTx(ctx context.Context, tx interface{}, id uuid.UUID, newBalance decimal.Decimal) error
	// WithTransaction executes fn within a single database transaction. The
	// opaque tx handle is accepted by the *Tx methods of every repository.
	WithTransaction(ctx context.Context, fn func(tx interface{}) error) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// CreateTx creates an account within a database transaction.
func (r *accountRepository) CreateTx(ctx context.Context, tx interface{}, account *model.Account) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(account).Error
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUserID finds the account belonging to a user.
func (r *accountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateBalanceTx updates the balance within a database transaction.
func (r *accountRepository) UpdateBalanceTx(ctx context.Context, tx interface{}, id uuid.UUID, newBalance decimal.Decimal) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", newBalance).Error
}

// WithTransaction executes a function within a database transaction.
func (r *accountRepository) WithTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}
