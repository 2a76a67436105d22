// Package notify pushes payment outcomes to a Telegram channel via
// the Bot HTTP API. Purely advisory: failures are logged, never
// surfaced to the payment flow.
package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"cartflow/internal/yagoutpay"
)

// TelegramNotifier posts payment reports to a configured chat. A nil
// notifier is valid and does nothing, so callers never need to guard.
type TelegramNotifier struct {
	client *resty.Client
	chatID string
	logger *zap.Logger
}

// NewTelegramNotifier returns nil when token or chat id is unset.
func NewTelegramNotifier(token, chatID string, logger *zap.Logger) *TelegramNotifier {
	if token == "" || chatID == "" {
		return nil
	}
	return &TelegramNotifier{
		client: resty.New().SetBaseURL("https://api.telegram.org/bot" + token),
		chatID: chatID,
		logger: logger,
	}
}

// PaymentOutcome reports a finalized payment to the channel.
func (n *TelegramNotifier) PaymentOutcome(ctx context.Context, outcome *yagoutpay.Outcome) {
	if n == nil || outcome == nil {
		return
	}

	var text string
	if outcome.ErrorCode != "" {
		text = fmt.Sprintf(
			"❌ <b>Payment failed</b>\n\nOrder: %s\nAmount: %s ETB\nError: %s (%s)",
			outcome.OrderID, outcome.Amount, outcome.ErrorCode, outcome.ErrorMessage,
		)
	} else {
		text = fmt.Sprintf(
			"💵 <b>Payment %s</b>\n\nOrder: %s\nAmount: %s ETB\nTransaction: %s",
			outcome.Status, outcome.OrderID, outcome.Amount, outcome.TransactionID,
		)
	}

	_, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"chat_id":    n.chatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		Post("/sendMessage")
	if err != nil {
		n.logger.Warn("telegram notification failed", zap.String("order_no", outcome.OrderID), zap.Error(err))
	}
}
