package rediscache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"guest-response-agent/internal/metrics"
	"guest-response-agent/internal/model"
)

const (
	propertyKeyPrefix    = "property:"
	reservationKeyPrefix = "reservation:"
)

// GetProperty serves from cache when possible. Missing records are not
// cached so a property created after a miss becomes visible immediately.
func (r *implRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	key := propertyKeyPrefix + id

	var cached model.Property
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := r.next.GetProperty(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	r.toCache(ctx, key, p)
	return p, nil
}

// GetReservation serves from cache when possible.
func (r *implRepository) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	key := reservationKeyPrefix + id

	var cached model.Reservation
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	res, err := r.next.GetReservation(ctx, id)
	if err != nil || res == nil {
		return res, err
	}
	r.toCache(ctx, key, res)
	return res, nil
}

func (r *implRepository) fromCache(ctx context.Context, key string, dest any) bool {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.CacheMiss.WithLabelValues("record").Inc()
		return false
	}
	if err != nil {
		r.l.Warnf(ctx, "inquiry/repository/rediscache get %s: %v", key, err)
		metrics.CacheMiss.WithLabelValues("record").Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		r.l.Warnf(ctx, "inquiry/repository/rediscache decode %s: %v", key, err)
		metrics.CacheMiss.WithLabelValues("record").Inc()
		return false
	}
	metrics.CacheHit.WithLabelValues("record").Inc()
	return true
}

func (r *implRepository) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.l.Warnf(ctx, "inquiry/repository/rediscache encode %s: %v", key, err)
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.l.Warnf(ctx, "inquiry/repository/rediscache set %s: %v", key, err)
	}
}
