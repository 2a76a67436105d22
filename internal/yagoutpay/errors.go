package yagoutpay

import "fmt"

// ConfigError reports missing or malformed gateway credentials.
// It is fatal at startup and never silently defaulted.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("yagoutpay config: %s: %s", e.Field, e.Reason)
}

// EncodingError reports a cipher, padding or base64 failure. Inbound
// decrypt failures map to 400; failures on data this service produced
// itself indicate an internal defect and map to 500.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("yagoutpay %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// GatewayError reports a network failure or an unexpected gateway
// response shape. Not retried; Timeout distinguishes deadline
// expiries from other transport failures.
type GatewayError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("yagoutpay %s: timeout: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("yagoutpay %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
