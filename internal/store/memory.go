package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default TransactionStore: a mutex-guarded map.
// Suitable for the demo deployment and for tests; records survive
// only for the process lifetime.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*TransactionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*TransactionRecord)}
}

var _ TransactionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, orderNo string) (*TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[orderNo]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, rec *TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.OrderNo] = &cp
	return nil
}

func (s *MemoryStore) CompareAndSwapStatus(_ context.Context, orderNo string, expected, next Status, transactionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[orderNo]
	if !ok {
		return false, ErrNotFound
	}
	if rec.Status != expected {
		return false, nil
	}
	rec.Status = next
	if transactionID != "" {
		rec.TransactionID = transactionID
	}
	rec.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) ListInitiatedBefore(_ context.Context, cutoff time.Time) ([]*TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*TransactionRecord
	for _, rec := range s.records {
		if rec.Status == StatusInitiated && rec.CreatedAt.Before(cutoff) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}
