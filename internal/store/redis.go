package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores the serialized document under a single Redis key.
// Save uses WATCH/MULTI so a concurrent writer aborts the transaction.
type RedisBackend struct {
	rdb *redis.Client
	key string
}

// NewRedisBackend returns a RedisBackend using key (DefaultKey when empty).
func NewRedisBackend(rdb *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultKey
	}
	return &RedisBackend{rdb: rdb, key: key}
}

func (r *RedisBackend) Load(ctx context.Context) (*Document, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", r.key, err)
	}
	return Decode(data)
}

func (r *RedisBackend) Save(ctx context.Context, doc *Document) error {
	data, version, err := nextRevision(doc)
	if err != nil {
		return err
	}

	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		var stored int64
		current, err := tx.Get(ctx, r.key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis GET %s: %w", r.key, err)
		default:
			if stored, err = peekVersion(current); err != nil {
				return err
			}
		}
		if stored != doc.Version {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)
			return nil
		})
		return err
	}, r.key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrVersionConflict
	}
	if err != nil {
		return err
	}

	doc.Version = version
	return nil
}
