package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hsavault/internal/errors"
	"hsavault/internal/model"
	"hsavault/internal/repository"
)

// CardService handles virtual card issuance and lookup.
type CardService interface {
	// Issue creates the account's virtual card. At most one active card may
	// exist per account; a second issuance attempt is a conflict.
	Issue(ctx context.Context, userID uuid.UUID) (*model.Card, error)
	// GetActive returns the active card, or nil when none has been issued.
	GetActive(ctx context.Context, userID uuid.UUID) (*model.Card, error)
}

type cardService struct {
	accountRepo repository.AccountRepository
	cardRepo    repository.CardRepository
	locks       *AccountLocker
}

// NewCardService creates a new card service.
func NewCardService(accountRepo repository.AccountRepository, cardRepo repository.CardRepository, locks *AccountLocker) CardService {
	return &cardService{
		accountRepo: accountRepo,
		cardRepo:    cardRepo,
		locks:       locks,
	}
}

// Issue generates and stores a virtual card for the user's account.
func (s *cardService) Issue(ctx context.Context, userID uuid.UUID) (*model.Card, error) {
	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	// The existence check and the insert are serialized per account.
	mutex := s.locks.Lock(account.ID)
	mutex.Lock()
	defer mutex.Unlock()

	existing, err := s.cardRepo.FindActiveByAccountID(ctx, account.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing card: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrCardAlreadyIssued
	}

	card := &model.Card{
		ID:         uuid.New(),
		AccountID:  account.ID,
		CardNumber: generateCardNumber(),
		CVV:        generateCVV(),
		ExpiryDate: generateExpiryDate(),
		IsActive:   true,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		// A card-number collision trips the unique index and lands here.
		return nil, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// GetActive returns the user's active card or nil.
func (s *cardService) GetActive(ctx context.Context, userID uuid.UUID) (*model.Card, error) {
	account, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	card, err := s.cardRepo.FindActiveByAccountID(ctx, account.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// generateCardNumber draws 15 random digits and appends the Luhn check
// digit, yielding a well-formed 16-digit card number.
func generateCardNumber() string {
	digits := make([]byte, 0, 16)
	for i := 0; i < 15; i++ {
		digits = append(digits, byte('0'+rand.Intn(10)))
	}
	return string(append(digits, byte('0'+luhnCheckDigit(string(digits)))))
}

// luhnCheckDigit computes the Luhn check digit for a partial card number.
func luhnCheckDigit(partial string) int {
	sum := 0
	double := true
	for i := len(partial) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(partial[i]))
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return (10 - sum%10) % 10
}

func generateCVV() string {
	return fmt.Sprintf("%03d", rand.Intn(1000))
}

// generateExpiryDate returns MM/YYYY three years out.
func generateExpiryDate() string {
	now := time.Now()
	return fmt.Sprintf("%02d/%d", int(now.Month()), now.Year()+3)
}
