package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hsavault/internal/model"
	"hsavault/internal/service"
)

// bankVerificationSteps mimics the bank-connection handshake shown during a
// simulated deposit.
var bankVerificationSteps = []string{
	"Checking for bank connection...",
	"Verifying account information...",
	"Validating routing number...",
	"Confirming account ownership...",
	"Processing deposit...",
}

// AccountHandler handles balance, summary, and deposit endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DepositResponse represents a deposit response.
type DepositResponse struct {
	ID         string `json:"id"`
	Amount     string `json:"amount"`
	NewBalance string `json:"new_balance"`
}

// SimulatedDepositResponse adds the bank-verification trail and status.
type SimulatedDepositResponse struct {
	DepositResponse
	BankVerificationSteps []string `json:"bank_verification_steps"`
	Status                string   `json:"status"`
}

// GetBalance godoc
// @Summary Get HSA account state
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/balance [get]
func (h *AccountHandler) GetBalance(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	account, err := h.accountService.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"account": account})
}

// GetSummary godoc
// @Summary Get account summary
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]service.Summary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/summary [get]
func (h *AccountHandler) GetSummary(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	summary, err := h.accountService.GetSummary(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"summary": summary})
}

// Deposit godoc
// @Summary Deposit funds into the HSA account
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param request body DepositRequest true "Deposit amount"
// @Success 200 {object} map[string]DepositResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	deposit, newBalance, err := h.accountService.Deposit(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Deposit successful",
		"deposit": depositResponse(deposit, newBalance),
	})
}

// SimulateDeposit godoc
// @Summary Deposit funds through the simulated bank flow
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param request body DepositRequest true "Deposit amount"
// @Success 200 {object} map[string]SimulatedDepositResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/deposit/simulate [post]
func (h *AccountHandler) SimulateDeposit(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	deposit, newBalance, err := h.accountService.SimulateDeposit(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Deposit processed successfully",
		"deposit": SimulatedDepositResponse{
			DepositResponse:       depositResponse(deposit, newBalance),
			BankVerificationSteps: bankVerificationSteps,
			Status:                "COMPLETED",
		},
	})
}

func depositResponse(deposit *model.Deposit, newBalance decimal.Decimal) DepositResponse {
	return DepositResponse{
		ID:         deposit.ID.String(),
		Amount:     deposit.Amount.String(),
		NewBalance: newBalance.String(),
	}
}
