package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hsavault/internal/medical"
)

// CategoryHandler serves the static medical-expense category table.
type CategoryHandler struct{}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List godoc
// @Summary List medical expense categories and their qualification
// @Tags medical-expenses
// @Produce json
// @Success 200 {object} map[string][]medical.Category
// @Router /medical-expenses/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": medical.All()})
}
