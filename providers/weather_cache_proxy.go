package providers

import (
	"fmt"
	"log/slog"
	"time"

	"weatherwidget.app/metrics"
	"weatherwidget.app/models"
)

// WeatherCacheProxy serves snapshots from a TTL cache before falling back to
// the real provider. Keys are coordinates rounded to 4 decimal places, which
// is roughly 11 m of latitude - well below the resolution of the upstream
// weather grid.
type WeatherCacheProxy struct {
	realProvider WeatherProvider
	cache        SnapshotCacheInterface
	cacheTTL     time.Duration
	metrics      *metrics.CacheMetrics
}

func NewWeatherCacheProxy(realProvider WeatherProvider, cache SnapshotCacheInterface, cacheTTL time.Duration, cacheType string) *WeatherCacheProxy {
	return &WeatherCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics.NewCacheMetrics(cacheType),
	}
}

func (p *WeatherCacheProxy) FetchCurrent(latitude, longitude float64) (*models.WeatherSnapshot, error) {
	cacheKey := p.generateCacheKey(latitude, longitude)

	start := time.Now()
	cached, found := p.cache.Get(cacheKey)
	p.metrics.RecordLatency("get", time.Since(start).Seconds())

	if found {
		p.metrics.RecordHit()
		slog.Debug("snapshot cache hit", "key", cacheKey)
		return cached, nil
	}

	p.metrics.RecordMiss()
	slog.Debug("snapshot cache miss", "key", cacheKey)

	snapshot, err := p.realProvider.FetchCurrent(latitude, longitude)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	p.cache.Set(cacheKey, snapshot, p.cacheTTL)
	p.metrics.RecordLatency("set", time.Since(start).Seconds())

	return snapshot, nil
}

// GetMetrics returns the cache metrics recorder for the debug endpoint
func (p *WeatherCacheProxy) GetMetrics() *metrics.CacheMetrics {
	return p.metrics
}

func (p *WeatherCacheProxy) generateCacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", latitude, longitude)
}
