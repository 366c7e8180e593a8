package providers

import (
	"fmt"
	"time"

	"weatherwidget.app/config"
	"weatherwidget.app/providers/cache"
)

// CacheType identifies the snapshot cache backend
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// CacheTypeFromString converts a configuration string to a cache type,
// falling back to the in-memory backend for unknown values
func CacheTypeFromString(s string) CacheType {
	if s == string(CacheTypeRedis) {
		return CacheTypeRedis
	}
	return CacheTypeMemory
}

// ProviderConfiguration bundles everything needed to assemble the providers
type ProviderConfiguration struct {
	WeatherAPIKey   string
	WeatherBaseURL  string
	GeoDirectURL    string
	GeoReverseURL   string
	GeoResultLimit  int
	LocationBaseURL string
	LocationTimeout time.Duration
	LocationEnabled bool
	CacheTTL        time.Duration
	EnableCache     bool
	EnableLogging   bool
	CacheType       CacheType
	CacheConfig     *config.CacheConfig
}

// ProviderManager assembles and owns the upstream clients: the weather
// provider (optionally wrapped in cache and logging decorators), the
// geocoding provider and the location provider.
type ProviderManager struct {
	weather    WeatherProvider
	geocoding  GeocodingProvider
	location   LocationProvider
	cacheProxy *WeatherCacheProxy
	config     *ProviderConfiguration
}

// NewProviderManager builds the provider stack from configuration. The
// cityCache lookup is consulted by the geocoding provider before any
// network call.
func NewProviderManager(cfg *ProviderConfiguration, cityCache CachedCityLookup) (*ProviderManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider configuration is required")
	}

	manager := &ProviderManager{config: cfg}

	var weather WeatherProvider = NewOpenWeatherMapProvider(cfg.WeatherAPIKey, cfg.WeatherBaseURL)

	if cfg.EnableCache {
		snapshotCache, err := buildSnapshotCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("create snapshot cache: %w", err)
		}
		proxy := NewWeatherCacheProxy(weather, snapshotCache, cfg.CacheTTL, string(cfg.CacheType))
		manager.cacheProxy = proxy
		weather = proxy
	}

	if cfg.EnableLogging {
		weather = NewWeatherLoggerDecorator(weather, "openweathermap")
	}

	manager.weather = weather
	manager.geocoding = NewOpenWeatherGeocodingProvider(GeocodingProviderOptions{
		APIKey:      cfg.WeatherAPIKey,
		DirectURL:   cfg.GeoDirectURL,
		ReverseURL:  cfg.GeoReverseURL,
		ResultLimit: cfg.GeoResultLimit,
		CityCache:   cityCache,
	})

	if cfg.LocationEnabled {
		manager.location = NewIPLocationProvider(cfg.LocationBaseURL, cfg.LocationTimeout)
	} else {
		manager.location = NewDisabledLocationProvider()
	}

	return manager, nil
}

func buildSnapshotCache(cfg *ProviderConfiguration) (SnapshotCacheInterface, error) {
	switch cfg.CacheType {
	case CacheTypeRedis:
		if cfg.CacheConfig == nil {
			return nil, fmt.Errorf("redis cache requires cache configuration")
		}
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         cfg.CacheConfig.RedisAddr,
			Password:     cfg.CacheConfig.RedisPassword,
			DB:           cfg.CacheConfig.RedisDB,
			DialTimeout:  time.Duration(cfg.CacheConfig.RedisDialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.CacheConfig.RedisReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.CacheConfig.RedisWriteTimeout) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return cache.NewSnapshotCache(redisCache), nil
	default:
		return cache.NewSnapshotCache(cache.NewMemoryCache()), nil
	}
}

// Weather returns the assembled weather provider
func (m *ProviderManager) Weather() WeatherProvider {
	return m.weather
}

// Geocoding returns the assembled geocoding provider
func (m *ProviderManager) Geocoding() GeocodingProvider {
	return m.geocoding
}

// Location returns the assembled location provider
func (m *ProviderManager) Location() LocationProvider {
	return m.location
}

// GetProviderInfo returns a description of the assembled provider stack
func (m *ProviderManager) GetProviderInfo() map[string]interface{} {
	info := map[string]interface{}{
		"weather_base_url": m.config.WeatherBaseURL,
		"geo_direct_url":   m.config.GeoDirectURL,
		"cache_enabled":    m.config.EnableCache,
		"logging_enabled":  m.config.EnableLogging,
		"location_enabled": m.config.LocationEnabled,
	}

	if m.cacheProxy != nil {
		info["cache_type"] = string(m.config.CacheType)
		info["cache_ttl"] = m.config.CacheTTL.String()
		info["cache_stats"] = m.cacheProxy.GetMetrics().GetStats()
	}

	return info
}

var _ ProviderManagerInterface = (*ProviderManager)(nil)
var _ GeocodingProvider = (*OpenWeatherGeocodingProvider)(nil)
var _ WeatherProvider = (*OpenWeatherMapProvider)(nil)
var _ WeatherProvider = (*WeatherCacheProxy)(nil)
var _ WeatherProvider = (*WeatherLoggerDecorator)(nil)
var _ LocationProvider = (*IPLocationProvider)(nil)
