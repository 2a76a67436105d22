package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "txn:"

// casScript performs the status transition atomically server-side so
// two concurrent callbacks for the same order cannot both win.
// Returns -1 unknown order, 0 status mismatch, 1 swapped.
var casScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then return -1 end
local rec = cjson.decode(v)
if rec.status ~= ARGV[1] then return 0 end
rec.status = ARGV[2]
if ARGV[3] ~= '' then rec.transaction_id = ARGV[3] end
rec.updated_at = ARGV[4]
redis.call('SET', KEYS[1], cjson.encode(rec))
return 1
`)

// RedisStore is a TransactionStore backed by Redis, for deployments
// running more than one instance behind the gateway callbacks.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, pass string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis store ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

var _ TransactionStore = (*RedisStore)(nil)

func (s *RedisStore) Get(ctx context.Context, orderNo string) (*TransactionRecord, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+orderNo).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", orderNo, err)
	}

	var rec TransactionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("redis decode %s: %w", orderNo, err)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *TransactionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", rec.OrderNo, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+rec.OrderNo, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis put %s: %w", rec.OrderNo, err)
	}
	return nil
}

func (s *RedisStore) CompareAndSwapStatus(ctx context.Context, orderNo string, expected, next Status, transactionID string) (bool, error) {
	res, err := casScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + orderNo},
		string(expected), string(next), transactionID, time.Now().UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis cas %s: %w", orderNo, err)
	}
	switch res {
	case -1:
		return false, ErrNotFound
	case 0:
		return false, nil
	default:
		return true, nil
	}
}

func (s *RedisStore) ListInitiatedBefore(ctx context.Context, cutoff time.Time) ([]*TransactionRecord, error) {
	var out []*TransactionRecord

	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis scan get %s: %w", iter.Val(), err)
		}
		var rec TransactionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.Status == StatusInitiated && rec.CreatedAt.Before(cutoff) {
			out = append(out, &rec)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return out, nil
}
