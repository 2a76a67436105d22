package yagoutpay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIResponse is the gateway's synchronous API-channel reply. When
// Response is present it is base64 ciphertext under the shared key.
type APIResponse struct {
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
	Response      string `json:"response,omitempty"`
}

// Client posts encrypted payment requests to the gateway's API
// endpoint. Calls block until the gateway answers or the timeout
// fires; there is no retry.
type Client struct {
	client *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{client: resty.New().SetTimeout(timeout)}
}

// PostPayment sends {merchantId, merchantRequest} and decodes the
// reply. Transport failures and unexpected response shapes come back
// as GatewayError; decryption of Response is the caller's concern.
func (c *Client) PostPayment(ctx context.Context, apiURL, merchantID, merchantRequest string) (*APIResponse, error) {
	var out APIResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"merchantId":      merchantID,
			"merchantRequest": merchantRequest,
		}).
		SetResult(&out).
		Post(apiURL)
	if err != nil {
		return nil, &GatewayError{Op: "api call", Timeout: isTimeout(err), Err: err}
	}
	if resp.IsError() {
		return nil, &GatewayError{Op: "api call", Err: fmt.Errorf("gateway returned %s", resp.Status())}
	}
	if out.Status == "" {
		return nil, &GatewayError{Op: "api call", Err: fmt.Errorf("unexpected response shape: %q", truncateBody(resp.String()))}
	}
	return &out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateBody(s string) string {
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
