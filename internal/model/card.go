package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card is a virtual spending card linked to an HSA account. At most one
// active card exists per account; the check happens at issuance time.
type Card struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID  uuid.UUID `json:"account_id" gorm:"type:char(36);not null;index"`
	CardNumber string    `json:"card_number" gorm:"size:19;uniqueIndex;not null"`
	CVV        string    `json:"cvv" gorm:"size:4;not null"`
	ExpiryDate string    `json:"expiry_date" gorm:"size:7;not null"` // MM/YYYY format
	IsActive   bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// TableName keeps the original table name.
func (Card) TableName() string {
	return "virtual_cards"
}

// BeforeCreate sets UUID before creating the record.
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
