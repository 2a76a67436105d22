package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cartflow/internal/config"
	"cartflow/internal/handler"
	"cartflow/internal/handler/api"
	"cartflow/internal/middleware"
	"cartflow/internal/notify"
	"cartflow/internal/pkg/utils"
	"cartflow/internal/repository"
	"cartflow/internal/yagoutpay"
)

// requestValidator plugs go-playground/validator into Echo.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newValidator() *requestValidator {
	v := validator.New()
	// "amount": decimal string with exactly two fractional digits.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return utils.ValidAmount(fl.Field().String())
	})
	return &requestValidator{validate: v}
}

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	gateway *yagoutpay.Gateway,
	deduper middleware.CallbackDeduper,
	notifier *notify.TelegramNotifier,
	checkout *config.CheckoutConfig,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())
	e.Validator = newValidator()

	// Repositories
	var orders *repository.OrderRepository
	var products *repository.ProductRepository
	if db != nil {
		orders = repository.NewOrderRepository(db)
		products = repository.NewProductRepository(db)
	}

	// Handlers
	paymentHandler := handler.NewPaymentHandler(gateway, orders, notifier, logger)
	callbackHandler := handler.NewPaymentCallbackHandler(gateway, orders, notifier, checkout, logger)

	// Payment routes
	payments := e.Group("/payments")
	payments.POST("/initiate", paymentHandler.Initiate)
	payments.POST("/api/initiate", paymentHandler.APIInitiate)
	payments.GET("/transaction/:order_no", paymentHandler.GetTransaction)

	// Gateway callbacks (deduplicated per order and kind)
	callbacks := payments.Group("/callback")
	callbacks.Use(middleware.CallbackDedup(deduper))
	callbacks.POST("/success", callbackHandler.Success)
	callbacks.POST("/failure", callbackHandler.Failure)

	// Storefront catalog + audit trail
	if db != nil {
		productHandler := api.NewProductHandler(products, logger)
		orderHandler := api.NewOrderHandler(orders, logger)

		apiGroup := e.Group("/api")
		apiGroup.GET("/products", productHandler.List)
		apiGroup.GET("/products/:id", productHandler.Get)
		apiGroup.GET("/orders", orderHandler.List)
		apiGroup.GET("/orders/:order_no", orderHandler.Get)
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
