package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hsavault/internal/errors"
)

// userIDFromQuery pulls the userId query parameter every account-scoped
// endpoint carries.
func userIDFromQuery(c echo.Context) (uuid.UUID, *echo.HTTPError) {
	raw := c.QueryParam("userId")
	if raw == "" {
		httpErr := errors.MapErrorToHTTP(errors.ErrUserIDRequired)
		return uuid.Nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}
	return userID, nil
}

// mapServiceError converts a domain error into an echo HTTP error.
func mapServiceError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
