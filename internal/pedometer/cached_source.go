package pedometer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/bodix/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// windows ending this close to now are still filling up with samples
const openWindowGrace = time.Minute

// CachedSource keeps recent window results in memory. Only successful
// results of windows that already ended are cached; failures and open
// windows always go to the underlying source.
type CachedSource struct {
	source        *Source
	cache         *freecache.Cache
	expireSeconds int
	metrics       *metrics.Manager
	now           func() time.Time
}

func NewCachedSource(
	source *Source,
	cacheSizeMB int,
	expireSeconds int,
	metricsManager *metrics.Manager,
) *CachedSource {
	megabyte := 1024 * 1024
	return &CachedSource{
		source:        source,
		cache:         freecache.NewCache(cacheSizeMB * megabyte),
		expireSeconds: expireSeconds,
		metrics:       metricsManager,
		now:           time.Now,
	}
}

func (c *CachedSource) WithClock(now func() time.Time) *CachedSource {
	c.now = now
	c.source.WithClock(now)
	return c
}

func cacheKey(from, to time.Time) []byte {
	return []byte(fmt.Sprintf("%d|%d", from.UnixNano(), to.UnixNano()))
}

func (c *CachedSource) Query(ctx context.Context, from, to time.Time) (Data, error) {
	// cached windows are only served while access is granted
	if status := c.source.Status(ctx); status != StatusAuthorized {
		return Data{}, fmt.Errorf("%w: status %s", ErrUnavailable, status)
	}

	key := cacheKey(from, to)
	if cached, err := c.cache.Get(key); err == nil {
		var data Data
		if err := json.Unmarshal(cached, &data); err == nil {
			c.metrics.CounterSourceCacheHits.Inc()
			return data, nil
		}
		log.Errorf("pedometer cache: unmarshal cached window: %s", err)
	}
	c.metrics.CounterSourceCacheMisses.Inc()

	data, err := c.source.Query(ctx, from, to)
	if err != nil {
		return Data{}, err
	}

	if to.Before(c.now().Add(-openWindowGrace)) {
		dataBytes, err := json.Marshal(data)
		if err != nil {
			log.Errorf("pedometer cache: marshal window: %s", err)
			return data, nil
		}
		if err := c.cache.Set(key, dataBytes, c.expireSeconds); err != nil {
			log.Warnf("pedometer cache: set window: %s", err)
		}
	}

	return data, nil
}

func (c *CachedSource) Updates(ctx context.Context, from time.Time, every time.Duration) <-chan Data {
	return c.source.Updates(ctx, from, every)
}

func (c *CachedSource) SubDayGranularity() bool {
	return c.source.SubDayGranularity()
}

// Clear drops all cached windows, e.g. after a late batch of samples arrived.
func (c *CachedSource) Clear() {
	c.cache.Clear()
}
