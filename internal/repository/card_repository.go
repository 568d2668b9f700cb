package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hsavault/internal/model"
)

// CardRepository defines virtual card persistence operations.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	FindActiveByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Card, error)
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new card. The unique index on card_number rejects a
// random collision at insert time.
func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// FindActiveByAccountID finds the active card for an account, if any.
func (r *cardRepository) FindActiveByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_active = ?", accountID, true).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}
