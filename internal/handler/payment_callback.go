package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cartflow/internal/config"
	"cartflow/internal/notify"
	"cartflow/internal/repository"
	"cartflow/internal/store"
	"cartflow/internal/yagoutpay"
)

// PaymentCallbackHandler handles gateway-originated callbacks. These
// handlers are deliberately lenient: the gateway will not retry
// forever, so they always acknowledge the delivery and redirect the
// customer, even when the payload cannot be decrypted.
type PaymentCallbackHandler struct {
	gateway  *yagoutpay.Gateway
	orders   *repository.OrderRepository
	notifier *notify.TelegramNotifier
	checkout *config.CheckoutConfig
	logger   *zap.Logger
}

func NewPaymentCallbackHandler(
	gateway *yagoutpay.Gateway,
	orders *repository.OrderRepository,
	notifier *notify.TelegramNotifier,
	checkout *config.CheckoutConfig,
	logger *zap.Logger,
) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		gateway:  gateway,
		orders:   orders,
		notifier: notifier,
		checkout: checkout,
		logger:   logger,
	}
}

// Success handles POST /payments/callback/success.
func (h *PaymentCallbackHandler) Success(c echo.Context) error {
	return h.handle(c, yagoutpay.CallbackSuccess)
}

// Failure handles POST /payments/callback/failure.
func (h *PaymentCallbackHandler) Failure(c echo.Context) error {
	return h.handle(c, yagoutpay.CallbackFailure)
}

func (h *PaymentCallbackHandler) handle(c echo.Context, kind yagoutpay.CallbackKind) error {
	fields := h.callbackFields(c)

	outcome := h.gateway.ProcessCallback(c.Request().Context(), fields, kind)

	h.auditCallback(outcome, kind)
	h.notifier.PaymentOutcome(c.Request().Context(), outcome)

	return c.Redirect(http.StatusFound, h.redirectURL(outcome, kind))
}

// callbackFields flattens the inbound payload. The gateway posts the
// hosted-channel callback as an urlencoded form; local testing and
// some configurations send JSON. Either way the fields arrive as a
// flat string map.
func (h *PaymentCallbackHandler) callbackFields(c echo.Context) map[string]string {
	fields := make(map[string]string)
	req := c.Request()

	contentType := req.Header.Get(echo.HeaderContentType)
	if strings.Contains(contentType, echo.MIMEApplicationJSON) {
		var payload map[string]any
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			h.logger.Warn("unparseable callback body", zap.Error(err))
			return fields
		}
		for k, v := range payload {
			if s, ok := v.(string); ok {
				fields[k] = s
			}
		}
		return fields
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.logger.Warn("unreadable callback body", zap.Error(err))
		return fields
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		h.logger.Warn("unparseable callback form", zap.Error(err))
		return fields
	}
	for k := range values {
		fields[k] = values.Get(k)
	}
	return fields
}

func (h *PaymentCallbackHandler) redirectURL(outcome *yagoutpay.Outcome, kind yagoutpay.CallbackKind) string {
	base := h.checkout.SuccessRedirectURL
	params := url.Values{}
	params.Set("order_id", outcome.OrderID)
	params.Set("amount", outcome.Amount)

	if kind == yagoutpay.CallbackFailure {
		base = h.checkout.FailureRedirectURL
		params.Set("error_code", outcome.ErrorCode)
		params.Set("error_message", outcome.ErrorMessage)
	} else if outcome.TransactionID != "" {
		params.Set("transaction_id", outcome.TransactionID)
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

func (h *PaymentCallbackHandler) auditCallback(outcome *yagoutpay.Outcome, kind yagoutpay.CallbackKind) {
	if h.orders == nil {
		return
	}
	status := string(store.StatusSuccess)
	if kind == yagoutpay.CallbackFailure {
		status = string(store.StatusFailed)
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
