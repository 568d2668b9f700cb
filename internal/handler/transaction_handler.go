package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hsavault/internal/medical"
	"hsavault/internal/model"
	"hsavault/internal/service"
)

// TransactionHandler handles expense authorization endpoints.
type TransactionHandler struct {
	txnService service.TransactionService
	simulator  service.Simulator
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(txnService service.TransactionService, simulator service.Simulator) *TransactionHandler {
	return &TransactionHandler{txnService: txnService, simulator: simulator}
}

// TransactionRequest represents an expense authorization request.
type TransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant" validate:"required"`
	Category string          `json:"category" validate:"required"`
}

// TransactionResponse represents one authorization outcome.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	Amount              string    `json:"amount"`
	Merchant            string    `json:"merchant"`
	Category            string    `json:"category"`
	CategoryDescription string    `json:"category_description"`
	IsMedicalExpense    bool      `json:"is_medical_expense"`
	NewBalance          string    `json:"new_balance"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// Process godoc
// @Summary Authorize a card expense
// @Tags transaction
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param request body TransactionRequest true "Expense data"
// @Success 200 {object} map[string]TransactionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transaction/process [post]
func (h *TransactionHandler) Process(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	txn, newBalance, status, err := h.txnService.Process(c.Request().Context(), userID, req.Amount, req.Merchant, req.Category)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Transaction processed successfully",
		"transaction": transactionResponse(txn, newBalance, status),
	})
}

// Simulate godoc
// @Summary Authorize one randomly drawn sample expense
// @Tags transaction
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]TransactionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transaction/simulate [post]
func (h *TransactionHandler) Simulate(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	txn, newBalance, status, err := h.simulator.SimulateOne(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Transaction processed successfully",
		"transaction": transactionResponse(txn, newBalance, status),
	})
}

// Recent godoc
// @Summary List recent transactions, newest first
// @Tags transaction
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string][]model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transaction/recent [get]
func (h *TransactionHandler) Recent(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	txns, err := h.txnService.Recent(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}
	if txns == nil {
		txns = []model.Transaction{}
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": txns})
}

func transactionResponse(txn *model.Transaction, newBalance decimal.Decimal, status string) TransactionResponse {
	return TransactionResponse{
		ID:                  txn.ID.String(),
		Amount:              txn.Amount.String(),
		Merchant:            txn.Merchant,
		Category:            txn.Category,
		CategoryDescription: medical.Describe(txn.Category),
		IsMedicalExpense:    txn.IsMedicalExpense,
		NewBalance:          newBalance.String(),
		Status:              status,
		CreatedAt:           txn.TransactionDate,
	}
}
