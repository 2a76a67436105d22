// Package store holds the shared transaction record keyed by order
// number. The canonical record lives here, not in the database: the
// interface exists so a real datastore can be swapped in without
// touching the codec or the gateway adapter.
package store

import (
	"context"
	"errors"
	"time"
)

// Status is the lifecycle state of a transaction record.
type Status string

const (
	StatusInitiated Status = "initiated"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
)

// ErrNotFound signals an unknown order number. Routine, not fatal.
var ErrNotFound = errors.New("transaction not found")

// TransactionRecord is created at initiation and finalized exactly
// once at callback (or expiry) time.
type TransactionRecord struct {
	OrderNo       string    `json:"order_no"`
	Amount        string    `json:"amount"`
	CustomerName  string    `json:"customer_name"`
	EmailID       string    `json:"email_id"`
	MobileNo      string    `json:"mobile_no"`
	BillAddress   string    `json:"bill_address,omitempty"`
	BillCity      string    `json:"bill_city,omitempty"`
	BillState     string    `json:"bill_state,omitempty"`
	BillCountry   string    `json:"bill_country,omitempty"`
	BillZip       string    `json:"bill_zip,omitempty"`
	Channel       string    `json:"integration_type"` // "hosted" or "api"
	Status        Status    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TransactionStore is the storage capability the gateway adapter is
// injected with. Status transitions go through CompareAndSwapStatus
// so concurrent callbacks for the same order cannot lose updates.
type TransactionStore interface {
	// Get returns the record for orderNo or ErrNotFound.
	Get(ctx context.Context, orderNo string) (*TransactionRecord, error)

	// Put stores or replaces the record.
	Put(ctx context.Context, rec *TransactionRecord) error

	// CompareAndSwapStatus transitions orderNo from expected to next,
	// setting transactionID when non-empty. It reports false without
	// error when the record is no longer in the expected status, and
	// ErrNotFound for an unknown order.
	CompareAndSwapStatus(ctx context.Context, orderNo string, expected, next Status, transactionID string) (bool, error)

	// ListInitiatedBefore returns initiated records created before
	// cutoff, for the expiry sweep.
	ListInitiatedBefore(ctx context.Context, cutoff time.Time) ([]*TransactionRecord, error)
}
