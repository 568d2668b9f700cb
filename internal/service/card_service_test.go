package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "hsavault/internal/errors"
	"hsavault/internal/model"
)

func TestCardService_Issue(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockAccountRepository, *MockCardRepository)
		expectedError error
	}{
		{
			name: "issues a card when none exists",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(&model.Account{ID: accountID, UserID: userID, Balance: decimal.Zero}, nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)
				cards.On("Create", mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "conflict when a card is already active",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(&model.Account{ID: accountID, UserID: userID, Balance: decimal.Zero}, nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(&model.Card{ID: uuid.New(), AccountID: accountID, IsActive: true}, nil)
			},
			expectedError: apperrors.ErrCardAlreadyIssued,
		},
		{
			name: "account not found",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountRepository)
			cards := new(MockCardRepository)
			tt.setupMock(accounts, cards)

			svc := NewCardService(accounts, cards, NewAccountLocker())
			card, err := svc.Issue(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, card)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, accountID, card.AccountID)
				assert.True(t, card.IsActive)
				assert.Regexp(t, regexp.MustCompile(`^\d{16}$`), card.CardNumber)
				assert.Regexp(t, regexp.MustCompile(`^\d{3}$`), card.CVV)
				assert.Regexp(t, regexp.MustCompile(`^\d{2}/\d{4}$`), card.ExpiryDate)
			}

			accounts.AssertExpectations(t)
			cards.AssertExpectations(t)
		})
	}
}

func TestCardService_GetActive(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	t.Run("returns the active card", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		cards := new(MockCardRepository)
		accounts.On("FindByUserID", mock.Anything, userID).Return(&model.Account{ID: accountID, UserID: userID}, nil)
		cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(&model.Card{ID: uuid.New(), AccountID: accountID, IsActive: true}, nil)

		svc := NewCardService(accounts, cards, NewAccountLocker())
		card, err := svc.GetActive(context.Background(), userID)
		assert.NoError(t, err)
		assert.NotNil(t, card)
	})

	t.Run("nil without error when no card was issued", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		cards := new(MockCardRepository)
		accounts.On("FindByUserID", mock.Anything, userID).Return(&model.Account{ID: accountID, UserID: userID}, nil)
		cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCardService(accounts, cards, NewAccountLocker())
		card, err := svc.GetActive(context.Background(), userID)
		assert.NoError(t, err)
		assert.Nil(t, card)
	})
}

func TestGenerateCardNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		number := generateCardNumber()
		assert.Len(t, number, 16)
		assert.True(t, luhnValid(number), "card number %s fails the Luhn check", number)
	}
}

// luhnValid verifies a full card number including its check digit.
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit, err := strconv.Atoi(string(number[i]))
		if err != nil {
			return false
		}
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func TestGenerateExpiryDate(t *testing.T) {
	expiry := generateExpiryDate()
	now := time.Now()

	var month, year int
	_, err := fmt.Sscanf(expiry, "%02d/%d", &month, &year)
	assert.NoError(t, err)
	assert.Equal(t, int(now.Month()), month)
	assert.Equal(t, now.Year()+3, year)
}
