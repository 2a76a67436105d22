package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(orderNo string, status Status, createdAt time.Time) *TransactionRecord {
	return &TransactionRecord{
		OrderNo:   orderNo,
		Amount:    "100.00",
		Channel:   "hosted",
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, record("ORD-1", StatusInitiated, time.Now())))

	got, err := s.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.OrderNo)
	assert.Equal(t, StatusInitiated, got.Status)

	// Mutating the returned record must not touch the stored copy.
	got.Status = StatusFailed
	again, err := s.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusInitiated, again.Status)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCompareAndSwap(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, record("ORD-1", StatusInitiated, time.Now())))

	swapped, err := s.CompareAndSwapStatus(ctx, "ORD-1", StatusInitiated, StatusSuccess, "TXN-9")
	require.NoError(t, err)
	assert.True(t, swapped)

	got, err := s.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "TXN-9", got.TransactionID)

	// A second transition from initiated must lose without error.
	swapped, err = s.CompareAndSwapStatus(ctx, "ORD-1", StatusInitiated, StatusFailed, "")
	require.NoError(t, err)
	assert.False(t, swapped)

	got, err = s.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "TXN-9", got.TransactionID)
}

func TestMemoryStoreCompareAndSwapKeepsTransactionID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := record("ORD-1", StatusInitiated, time.Now())
	rec.TransactionID = "TXN-1"
	require.NoError(t, s.Put(ctx, rec))

	// Empty transactionID leaves the existing one in place.
	swapped, err := s.CompareAndSwapStatus(ctx, "ORD-1", StatusInitiated, StatusFailed, "")
	require.NoError(t, err)
	assert.True(t, swapped)

	got, err := s.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "TXN-1", got.TransactionID)
}

func TestMemoryStoreCompareAndSwapUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.CompareAndSwapStatus(context.Background(), "NOPE", StatusInitiated, StatusFailed, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListInitiatedBefore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Put(ctx, record("OLD-1", StatusInitiated, now.Add(-time.Hour))))
	require.NoError(t, s.Put(ctx, record("OLD-2", StatusSuccess, now.Add(-time.Hour))))
	require.NoError(t, s.Put(ctx, record("NEW-1", StatusInitiated, now)))

	stale, err := s.ListInitiatedBefore(ctx, now.Add(-30*time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "OLD-1", stale[0].OrderNo)
}
