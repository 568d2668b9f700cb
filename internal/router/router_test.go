package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsavault/internal/auth"
	"hsavault/internal/config"
	"hsavault/internal/handler"
	"hsavault/internal/model"
	"hsavault/internal/service"
)

// stubTransactionService approves every attempt so the test can focus on the
// authentication gate.
type stubTransactionService struct{}

func (s *stubTransactionService) Process(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, merchant, category string) (*model.Transaction, decimal.Decimal, string, error) {
	return &model.Transaction{
		ID:               uuid.New(),
		AccountID:        uuid.New(),
		Amount:           amount,
		Merchant:         merchant,
		Category:         category,
		IsMedicalExpense: true,
		Type:             model.TransactionTypeExpense,
	}, decimal.RequireFromString("50.00"), model.StatusApproved, nil
}

func (s *stubTransactionService) Recent(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{JWTSecret: "test-secret"}
	Register(
		e,
		cfg,
		handler.NewAuthHandler(nil),
		handler.NewAccountHandler(nil),
		handler.NewCardHandler(nil),
		handler.NewTransactionHandler(&stubTransactionService{}, nil),
		handler.NewCategoryHandler(),
	)
	return e
}

var _ service.TransactionService = (*stubTransactionService)(nil)

func TestSecuredRoutes_BearerToken(t *testing.T) {
	e := newTestServer()

	token, err := auth.NewJWTService("test-secret").GenerateAccessToken(uuid.New(), "test@example.com")
	require.NoError(t, err)

	processURL := "/api/transaction/process?userId=" + uuid.New().String()
	body := `{"amount":"25.00","merchant":"Main Street Clinic","category":"doctor_visit"}`

	t.Run("standard Bearer header clears the gate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, processURL, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), model.StatusApproved)
		assert.Contains(t, rec.Body.String(), "category_description")
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, processURL, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, processURL, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret").GenerateAccessToken(uuid.New(), "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, processURL, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPublicRoutes_NoTokenRequired(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/medical-expenses/categories", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "doctor_visit")
}
