// Package cache provides a redis read-through cache for the shared national
// holiday calendar. Holiday rows change a few times a year but are read on
// every availability computation, so they are the one table worth caching.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jw-park/petkinder-backend/internal/domain"
)

// HolidaySource is the underlying calendar repository.
type HolidaySource interface {
	ListHolidayDates(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// Logger is the logging interface used by the cache.
type Logger interface {
	Warn(format string, v ...interface{})
}

// HolidayCache serves holiday range lookups from redis, falling back to the
// source repository on miss or on any redis failure. Cache errors never fail
// the request.
type HolidayCache struct {
	client *redis.Client
	source HolidaySource
	ttl    time.Duration
	log    Logger
}

// NewHolidayCache creates a holiday cache.
func NewHolidayCache(client *redis.Client, source HolidaySource, ttl time.Duration, log Logger) *HolidayCache {
	return &HolidayCache{client: client, source: source, ttl: ttl, log: log}
}

// ListHolidayDates returns holiday dates in [from, to].
func (c *HolidayCache) ListHolidayDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	key := fmt.Sprintf("holidays:%s:%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		dates, decodeErr := decodeDates(cached)
		if decodeErr == nil {
			return dates, nil
		}
		c.log.Warn("holiday cache: failed to decode cached value for %s: %v", key, decodeErr)
	} else if err != redis.Nil {
		c.log.Warn("holiday cache: redis get failed for %s: %v", key, err)
	}

	dates, err := c.source.ListHolidayDates(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if encoded, encodeErr := encodeDates(dates); encodeErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.log.Warn("holiday cache: redis set failed for %s: %v", key, setErr)
		}
	}

	return dates, nil
}

func encodeDates(dates []time.Time) (string, error) {
	strs := make([]string, len(dates))
	for i, d := range dates {
		strs[i] = d.Format(domain.DateFormat)
	}
	b, err := json.Marshal(strs)
	return string(b), err
}

func decodeDates(raw string) ([]time.Time, error) {
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(strs))
	for i, s := range strs {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}
	return dates, nil
}
