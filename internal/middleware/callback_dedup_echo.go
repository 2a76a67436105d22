package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// CallbackDedup drops duplicate gateway callback deliveries. The
// gateway may redeliver a callback; the first delivery wins and later
// ones are acknowledged without reprocessing. The callback kind is
// the final path segment (success or failure).
func CallbackDedup(deduper CallbackDeduper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deduper == nil {
				return next(c)
			}

			req := c.Request()
			if req.Body == nil {
				return next(c)
			}
			rawBody, err := io.ReadAll(req.Body)
			if err != nil {
				return next(c)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(rawBody))
			if len(rawBody) == 0 {
				return next(c)
			}

			orderNo := extractOrderNo(req.Header.Get(echo.HeaderContentType), rawBody)
			if orderNo == "" {
				return next(c)
			}

			kind := path.Base(req.URL.Path)
			seen, err := deduper.Seen(req.Context(), orderNo, kind)
			if err != nil {
				// Dedup backend trouble must not drop a callback.
				return next(c)
			}
			if seen {
				return c.JSON(http.StatusOK, map[string]string{
					"status":   "duplicate",
					"order_no": orderNo,
				})
			}
			return next(c)
		}
	}
}

func extractOrderNo(contentType string, body []byte) string {
	if strings.Contains(contentType, echo.MIMEApplicationJSON) {
		var payload struct {
			OrderNo string `json:"order_no"`
			OrderID string `json:"order_id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return ""
		}
		if payload.OrderNo != "" {
			return payload.OrderNo
		}
		return payload.OrderID
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return ""
	}
	if v := values.Get("order_no"); v != "" {
		return v
	}
	return values.Get("order_id")
}
