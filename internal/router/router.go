package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hsavault/internal/config"
	"hsavault/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	cardHandler *handler.CardHandler,
	txnHandler *handler.TransactionHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/medical-expenses/categories", categoryHandler.List)

	// Secured routes (require JWT authentication)
	// The cut prefix strips the Bearer scheme before the token reaches the
	// parser.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	// Account routes
	secured.GET("/account/balance", accountHandler.GetBalance)
	secured.GET("/account/summary", accountHandler.GetSummary)
	secured.POST("/account/deposit", accountHandler.Deposit)
	secured.POST("/account/deposit/simulate", accountHandler.SimulateDeposit)

	// Card routes
	secured.GET("/card/get", cardHandler.Get)
	secured.POST("/card/issue", cardHandler.Issue)

	// Transaction routes
	secured.POST("/transaction/process", txnHandler.Process)
	secured.POST("/transaction/simulate", txnHandler.Simulate)
	secured.GET("/transaction/recent", txnHandler.Recent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
