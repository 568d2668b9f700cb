package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit is an append-only contribution record.
type Deposit struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID   uuid.UUID       `json:"account_id" gorm:"type:char(36);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	DepositDate time.Time       `json:"deposit_date" gorm:"index"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID and timestamp before creating the record.
func (d *Deposit) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.DepositDate.IsZero() {
		d.DepositDate = time.Now().UTC()
	}
	return nil
}
