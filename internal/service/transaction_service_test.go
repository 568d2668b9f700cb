package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "hsavault/internal/errors"
	"hsavault/internal/model"
)

func TestTransactionService_Process(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()
	cardID := uuid.New()

	account := func(balance string) *model.Account {
		return &model.Account{ID: accountID, UserID: userID, Balance: decimal.RequireFromString(balance)}
	}
	activeCard := &model.Card{ID: cardID, AccountID: accountID, IsActive: true}

	tests := []struct {
		name           string
		amount         decimal.Decimal
		category       string
		setupMock      func(*MockAccountRepository, *MockCardRepository, *MockTransactionRepository)
		expectedError  error
		expectedStatus string
		wantBalance    string
	}{
		{
			name:     "qualified expense with sufficient funds is approved and debited",
			amount:   decimal.RequireFromString("75.50"),
			category: "prescription_medication",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(account("500.00"), nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(activeCard, nil)
				accounts.On("FindByID", mock.Anything, accountID).Return(account("500.00"), nil)
				accounts.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				txns.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(txn *model.Transaction) bool {
					return txn.IsMedicalExpense && txn.Type == model.TransactionTypeExpense && txn.CardID != nil && *txn.CardID == cardID
				})).Return(nil)
				accounts.On("UpdateBalanceTx", mock.Anything, mock.Anything, accountID, decimal.RequireFromString("424.50")).Return(nil)
			},
			expectedStatus: model.StatusApproved,
			wantBalance:    "424.5",
		},
		{
			name:     "insufficient funds declines but still logs the attempt",
			amount:   decimal.RequireFromString("600.00"),
			category: "prescription_medication",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(account("100.00"), nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(activeCard, nil)
				accounts.On("FindByID", mock.Anything, accountID).Return(account("100.00"), nil)
				txns.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.Transaction) bool {
					return !txn.IsMedicalExpense
				})).Return(nil)
			},
			expectedStatus: model.StatusDeclinedInsufficient,
			wantBalance:    "100",
		},
		{
			name:     "non-qualified category declines, logs, and leaves the balance alone",
			amount:   decimal.RequireFromString("40.00"),
			category: "entertainment",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(account("500.00"), nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(activeCard, nil)
				accounts.On("FindByID", mock.Anything, accountID).Return(account("500.00"), nil)
				txns.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.Transaction) bool {
					return !txn.IsMedicalExpense && txn.Category == "entertainment"
				})).Return(nil)
			},
			expectedStatus: model.StatusDeclinedNonQualified,
			wantBalance:    "500",
		},
		{
			name:     "no active card is rejected without a ledger row",
			amount:   decimal.RequireFromString("40.00"),
			category: "prescription_medication",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(account("500.00"), nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNoActiveCard,
		},
		{
			name:     "non-positive amount is rejected without a ledger row",
			amount:   decimal.Zero,
			category: "prescription_medication",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(account("500.00"), nil)
				cards.On("FindActiveByAccountID", mock.Anything, accountID).Return(activeCard, nil)
			},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:     "account not found",
			amount:   decimal.RequireFromString("40.00"),
			category: "prescription_medication",
			setupMock: func(accounts *MockAccountRepository, cards *MockCardRepository, txns *MockTransactionRepository) {
				accounts.On("FindByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountRepository)
			cards := new(MockCardRepository)
			txns := new(MockTransactionRepository)
			tt.setupMock(accounts, cards, txns)

			svc := NewTransactionService(accounts, cards, txns, nil, NewAccountLocker())
			txn, newBalance, status, err := svc.Process(context.Background(), userID, tt.amount, "Test Merchant", tt.category)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, txn)
				// Rejected attempts never reach the transaction log.
				txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				txns.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, txn)
				assert.Equal(t, tt.expectedStatus, status)
				assert.Equal(t, tt.wantBalance, newBalance.String())
				assert.Equal(t, accountID, txn.AccountID)
			}

			accounts.AssertExpectations(t)
			cards.AssertExpectations(t)
			txns.AssertExpectations(t)

			if tt.expectedStatus == model.StatusDeclinedInsufficient || tt.expectedStatus == model.StatusDeclinedNonQualified {
				// Declines never move money.
				accounts.AssertNotCalled(t, "UpdateBalanceTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestTransactionService_Recent(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	t.Run("asks for at most five, newest first", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		txns := new(MockTransactionRepository)
		accounts.On("FindByUserID", mock.Anything, userID).Return(&model.Account{ID: accountID, UserID: userID}, nil)
		txns.On("RecentByAccountID", mock.Anything, accountID, 5).Return([]model.Transaction{
			{ID: uuid.New(), AccountID: accountID},
			{ID: uuid.New(), AccountID: accountID},
		}, nil)

		svc := NewTransactionService(accounts, new(MockCardRepository), txns, nil, NewAccountLocker())
		recent, err := svc.Recent(context.Background(), userID)
		assert.NoError(t, err)
		assert.Len(t, recent, 2)
		txns.AssertExpectations(t)
	})

	t.Run("account not found", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		accounts.On("FindByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTransactionService(accounts, new(MockCardRepository), new(MockTransactionRepository), nil, NewAccountLocker())
		_, err := svc.Recent(context.Background(), userID)
		assert.Equal(t, apperrors.ErrAccountNotFound, err)
	})
}
