package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test case 1: Required fields - should return error when missing
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key WEATHER_API_KEY missing")
	})

	// Test case 2: Default values - should use defaults when not provided
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", config.Weather.BaseURL)
		assert.Equal(t, 10, config.Weather.CacheTTLMinutes)
		assert.True(t, config.Weather.EnableCache)
		assert.True(t, config.Weather.EnableLogging)
		assert.Equal(t, "http://api.openweathermap.org/geo/1.0/direct", config.Geocoding.DirectURL)
		assert.Equal(t, "http://api.openweathermap.org/geo/1.0/reverse", config.Geocoding.ReverseURL)
		assert.Equal(t, 5, config.Geocoding.ResultLimit)
		assert.True(t, config.Location.Enabled)
		assert.Equal(t, "http://ip-api.com/json", config.Location.BaseURL)
		assert.Equal(t, 10, config.Location.TimeoutSeconds)
		assert.Equal(t, "memory", config.Cache.Type)
		assert.Equal(t, "localhost:6379", config.Cache.RedisAddr)
		assert.Equal(t, "sqlite", config.Database.Driver)
		assert.Equal(t, "weatherwidget.db", config.Database.Path)
		assert.Equal(t, "tracked_cities", config.Widget.StorageKey)
		assert.Equal(t, 30, config.Widget.RefreshIntervalMinutes)
	})

	// Test case 3: Custom values - should use provided values
	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("WEATHER_API_KEY", "custom-api-key"))
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("WEATHER_API_BASE_URL", "https://test-api.example.com/weather"))
		require.NoError(t, os.Setenv("WEATHER_CACHE_TTL_MINUTES", "5"))
		require.NoError(t, os.Setenv("WEATHER_ENABLE_CACHE", "false"))
		require.NoError(t, os.Setenv("GEO_RESULT_LIMIT", "3"))
		require.NoError(t, os.Setenv("LOCATION_TIMEOUT_SECONDS", "15"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("REDIS_ADDR", "redis.example.com:6380"))
		require.NoError(t, os.Setenv("DB_DRIVER", "postgres"))
		require.NoError(t, os.Setenv("DB_HOST", "db.example.com"))
		require.NoError(t, os.Setenv("WIDGET_STORAGE_KEY", "my_cities"))
		require.NoError(t, os.Setenv("REFRESH_INTERVAL_MINUTES", "15"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "https://test-api.example.com/weather", config.Weather.BaseURL)
		assert.Equal(t, 5, config.Weather.CacheTTLMinutes)
		assert.False(t, config.Weather.EnableCache)
		assert.Equal(t, 3, config.Geocoding.ResultLimit)
		assert.Equal(t, 15, config.Location.TimeoutSeconds)
		assert.Equal(t, "redis", config.Cache.Type)
		assert.Equal(t, "redis.example.com:6380", config.Cache.RedisAddr)
		assert.Equal(t, "postgres", config.Database.Driver)
		assert.Equal(t, "db.example.com", config.Database.Host)
		assert.Equal(t, "my_cities", config.Widget.StorageKey)
		assert.Equal(t, 15, config.Widget.RefreshIntervalMinutes)
	})
}

func TestConfigValidation(t *testing.T) {
	setValid := func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))
	}

	tests := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"InvalidServerPort", "SERVER_PORT", "70000", "SERVER_PORT must be between 1 and 65535"},
		{"InvalidWeatherURL", "WEATHER_API_BASE_URL", "ftp://example.com", "WEATHER_API_BASE_URL must start with http:// or https://"},
		{"InvalidCacheTTL", "WEATHER_CACHE_TTL_MINUTES", "0", "WEATHER_CACHE_TTL_MINUTES must be at least 1 minute"},
		{"InvalidGeoURL", "GEO_DIRECT_URL", "not-a-url", "GEO_DIRECT_URL must start with http:// or https://"},
		{"InvalidGeoLimit", "GEO_RESULT_LIMIT", "0", "GEO_RESULT_LIMIT must be at least 1"},
		{"InvalidLocationTimeout", "LOCATION_TIMEOUT_SECONDS", "0", "LOCATION_TIMEOUT_SECONDS must be at least 1 second"},
		{"InvalidCacheType", "CACHE_TYPE", "memcached", "CACHE_TYPE must be one of: memory, redis"},
		{"InvalidDatabaseDriver", "DB_DRIVER", "oracle", "DB_DRIVER must be one of: sqlite, postgres"},
		{"EmptyStorageKey", "WIDGET_STORAGE_KEY", "", "WIDGET_STORAGE_KEY cannot be empty"},
		{"RefreshIntervalTooLarge", "REFRESH_INTERVAL_MINUTES", "2000", "REFRESH_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValid(t)
			require.NoError(t, os.Setenv(tt.key, tt.value))

			config, err := LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}

	t.Run("PostgresRequiresHost", func(t *testing.T) {
		setValid(t)
		require.NoError(t, os.Setenv("DB_DRIVER", "postgres"))
		require.NoError(t, os.Setenv("DB_HOST", ""))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "DB_HOST cannot be empty")
	})

	t.Run("PostgresInvalidSSLMode", func(t *testing.T) {
		setValid(t)
		require.NoError(t, os.Setenv("DB_DRIVER", "postgres"))
		require.NoError(t, os.Setenv("DB_SSL_MODE", "sometimes"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "DB_SSL_MODE must be one of")
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "weatherwidget",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=weatherwidget sslmode=disable",
		cfg.GetDSN())
}
