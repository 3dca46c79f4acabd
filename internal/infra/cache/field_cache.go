package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// Invalidator drops cached field snapshots after a field changes.
type Invalidator interface {
	Invalidate(ctx context.Context, fieldID uint) error
}

// FieldCache is a read-through redis cache in front of a FieldRepository.
// Redis failures degrade to the underlying repository; they never fail a booking.
type FieldCache struct {
	next domain.FieldRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewFieldCache(
	rdb *redis.Client,
	next domain.FieldRepository,
	ttl time.Duration,
) *FieldCache {
	return &FieldCache{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func fieldKey(fieldID uint) string {
	return fmt.Sprintf("field:%d", fieldID)
}

func (c *FieldCache) GetField(
	ctx context.Context,
	fieldID uint,
) (*models.Field, error) {

	key := fieldKey(fieldID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var f models.Field
		if jsonErr := json.Unmarshal(raw, &f); jsonErr == nil {
			return &f, nil
		}
		log.Println("field cache: corrupt entry", key)
	case !errors.Is(err, redis.Nil):
		log.Println("field cache get:", err)
	}

	f, err := c.next.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(f); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Println("field cache set:", err)
		}
	}

	return f, nil
}

func (c *FieldCache) Invalidate(ctx context.Context, fieldID uint) error {
	return c.rdb.Del(ctx, fieldKey(fieldID)).Err()
}

// Nop is used when no redis is configured.
type Nop struct{}

func (Nop) Invalidate(context.Context, uint) error { return nil }

// Compile-time check
var _ domain.FieldRepository = (*FieldCache)(nil)
