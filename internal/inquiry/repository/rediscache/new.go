package rediscache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/pkg/log"
)

type implRepository struct {
	next repository.RecordRepository
	rdb  *redis.Client
	ttl  time.Duration
	l    log.Logger
}

// New wraps a RecordRepository with a Redis read-through cache. Cache
// failures are logged and fall through to the underlying store, never
// failing the lookup.
func New(next repository.RecordRepository, rdb *redis.Client, ttl time.Duration, l log.Logger) repository.RecordRepository {
	if next == nil {
		panic("inquiry/repository/rediscache: next repository is required")
	}
	if rdb == nil {
		panic("inquiry/repository/rediscache: redis client is required")
	}
	return &implRepository{next: next, rdb: rdb, ttl: ttl, l: l}
}
