package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes card expenses from mirrored deposit entries.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeDeposit TransactionType = "deposit"
)

// Authorization statuses surfaced to the caller. Only the verdict
// (is_medical_expense) is persisted; the status string travels in the
// response.
const (
	StatusApproved             = "APPROVED"
	StatusDeclinedNonQualified = "DECLINED - Non-qualified expense"
	StatusDeclinedInsufficient = "DECLINED - Insufficient funds"
)

// Transaction is an append-only log entry. A row is written for every
// authorization attempt, approved or declined, and for mirrored simulated
// deposits.
type Transaction struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID        uuid.UUID       `json:"account_id" gorm:"type:char(36);not null;index"`
	CardID           *uuid.UUID      `json:"card_id,omitempty" gorm:"type:char(36);index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Merchant         string          `json:"merchant" gorm:"size:255;not null"`
	Category         string          `json:"category" gorm:"size:64;not null"`
	IsMedicalExpense bool            `json:"is_medical_expense" gorm:"not null"`
	TransactionDate  time.Time       `json:"transaction_date" gorm:"index"`
	Type             TransactionType `json:"type" gorm:"type:varchar(10);not null;default:'expense';index"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID and timestamp before creating the record.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now().UTC()
	}
	return nil
}
