package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hsavault/internal/service"
)

// CardHandler handles virtual card endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// Get godoc
// @Summary Get the active virtual card
// @Tags card
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /card/get [get]
func (h *CardHandler) Get(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	card, err := h.cardService.GetActive(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	// card is null when none has been issued
	return c.JSON(http.StatusOK, echo.Map{"card": card})
}

// Issue godoc
// @Summary Issue a virtual card for the HSA account
// @Tags card
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /card/issue [post]
func (h *CardHandler) Issue(c echo.Context) error {
	userID, httpErr := userIDFromQuery(c)
	if httpErr != nil {
		return httpErr
	}

	card, err := h.cardService.Issue(c.Request().Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Virtual card issued successfully",
		"card":    card,
	})
}
