package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cartflow/internal/models"
	"cartflow/internal/notify"
	"cartflow/internal/pkg/utils"
	"cartflow/internal/repository"
	"cartflow/internal/store"
	"cartflow/internal/yagoutpay"
)

// PaymentHandler exposes the payment-initiation surface consumed by
// the storefront.
type PaymentHandler struct {
	gateway  *yagoutpay.Gateway
	orders   *repository.OrderRepository
	notifier *notify.TelegramNotifier
	logger   *zap.Logger
}

func NewPaymentHandler(gateway *yagoutpay.Gateway, orders *repository.OrderRepository, notifier *notify.TelegramNotifier, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		gateway:  gateway,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Initiate handles POST /payments/initiate (hosted channel). Returns
// the encrypted request, integrity hash and post URL the storefront
// needs to auto-submit the redirect form.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req models.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.gateway.Initiate(c.Request().Context(), hostedPaymentRequest(&req))
	if err != nil {
		return h.writePaymentError(c, err)
	}

	h.auditInitiated(req.OrderNo, req.Amount, req.CustomerName, req.EmailID, req.MobileNo, "hosted")

	return c.JSON(http.StatusOK, result)
}

// APIInitiate handles POST /payments/api/initiate (API-direct
// channel) and returns the normalized gateway outcome.
func (h *PaymentHandler) APIInitiate(c echo.Context) error {
	var req models.APIPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.auditInitiated(req.OrderNo, req.Amount, req.CustomerName, req.EmailID, req.MobileNo, "api")

	outcome, err := h.gateway.CallAPI(c.Request().Context(), apiPaymentRequest(&req))
	if err != nil {
		h.auditOutcome(&yagoutpay.Outcome{OrderID: req.OrderNo, Status: string(store.StatusFailed)})
		return h.writePaymentError(c, err)
	}

	h.auditOutcome(outcome)
	h.notifier.PaymentOutcome(c.Request().Context(), outcome)

	return c.JSON(http.StatusOK, outcome)
}

// GetTransaction handles GET /payments/transaction/:order_no. An
// unknown order is a routine condition, answered with 404 rather
// than an error.
func (h *PaymentHandler) GetTransaction(c echo.Context) error {
	orderNo := c.Param("order_no")

	rec, err := h.gateway.Transaction(c.Request().Context(), orderNo)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "transaction not found", "order_no": orderNo})
	}
	if err != nil {
		h.logger.Error("transaction lookup failed", zap.String("order_no", orderNo), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "transaction lookup failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

// writePaymentError maps the adapter's error taxonomy to HTTP
// statuses: credentials 500, encoding on our own data 500, gateway
// transport 502.
func (h *PaymentHandler) writePaymentError(c echo.Context, err error) error {
	var cfgErr *yagoutpay.ConfigError
	var encErr *yagoutpay.EncodingError
	var gwErr *yagoutpay.GatewayError

	switch {
	case errors.As(err, &cfgErr):
		h.logger.Error("gateway credentials invalid", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "payment gateway is not configured"})
	case errors.As(err, &encErr):
		h.logger.Error("payload encoding failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "payment request could not be encoded"})
	case errors.As(err, &gwErr):
		h.logger.Error("gateway call failed", zap.Bool("timeout", gwErr.Timeout), zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "payment gateway unavailable"})
	default:
		h.logger.Error("payment failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "payment failed"})
	}
}

// auditInitiated writes the audit row for a new attempt. Best effort:
// a duplicate or unreachable database never blocks the payment.
func (h *PaymentHandler) auditInitiated(orderNo, amount, name, email, mobile, channel string) {
	if h.orders == nil {
		return
	}
	err := h.orders.Create(&models.Order{
		Reference:    utils.GenerateUUID(),
		OrderNo:      orderNo,
		Amount:       amount,
		CustomerName: name,
		EmailID:      email,
		MobileNo:     mobile,
		Channel:      channel,
		Status:       string(store.StatusInitiated),
	})
	if err != nil {
		h.logger.Warn("order audit write failed", zap.String("order_no", orderNo), zap.Error(err))
	}
}

func (h *PaymentHandler) auditOutcome(outcome *yagoutpay.Outcome) {
	if h.orders == nil {
		return
	}
	status := string(store.StatusFailed)
	if utils.IsSuccessStatus(outcome.Status) {
		status = string(store.StatusSuccess)
	}
	err := h.orders.UpdateByOrderNo(outcome.OrderID, map[string]interface{}{
		"status":         status,
		"transaction_id": outcome.TransactionID,
		"error_code":     outcome.ErrorCode,
		"error_message":  outcome.ErrorMessage,
	})
	if err != nil {
		h.logger.Warn("order audit update failed", zap.String("order_no", outcome.OrderID), zap.Error(err))
	}
}

func hostedPaymentRequest(req *models.InitiatePaymentRequest) *yagoutpay.PaymentRequest {
	return &yagoutpay.PaymentRequest{
		OrderNo:      req.OrderNo,
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		EmailID:      req.EmailID,
		MobileNo:     req.MobileNo,
		SuccessURL:   req.SuccessURL,
		FailureURL:   req.FailureURL,
		BillAddress:  req.BillAddress,
		BillCity:     req.BillCity,
		BillState:    req.BillState,
		BillCountry:  req.BillCountry,
		BillZip:      req.BillZip,
	}
}

func apiPaymentRequest(req *models.APIPaymentRequest) *yagoutpay.PaymentRequest {
	return &yagoutpay.PaymentRequest{
		OrderNo:      req.OrderNo,
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		EmailID:      req.EmailID,
		MobileNo:     req.MobileNo,
		BillAddress:  req.BillAddress,
		BillCity:     req.BillCity,
		BillState:    req.BillState,
		BillCountry:  req.BillCountry,
		BillZip:      req.BillZip,
		ShipAddress:  req.ShipAddress,
		ShipCity:     req.ShipCity,
		ShipState:    req.ShipState,
		ShipCountry:  req.ShipCountry,
		ShipZip:      req.ShipZip,
		ShipDays:     req.ShipDays,
		AddressCount: req.AddressCount,
		ItemCount:    req.ItemCount,
		ItemValue:    req.ItemValue,
		ItemCategory: req.ItemCategory,
		UDF1:         req.UDF1,
		UDF2:         req.UDF2,
		UDF3:         req.UDF3,
		UDF4:         req.UDF4,
		UDF5:         req.UDF5,
		UDF6:         req.UDF6,
		UDF7:         req.UDF7,
		PGID:         req.PGID,
		Paymode:      req.Paymode,
		SchemeID:     req.SchemeID,
		WalletType:   req.WalletType,
	}
}
