package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherwidget.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Geocoding GeocodingConfig `split_words:"true"`
	Location  LocationConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Widget    WidgetConfig    `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the current-weather provider
type WeatherConfig struct {
	APIKey          string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL         string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	CacheTTLMinutes int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	EnableCache     bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging   bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
}

// GeocodingConfig contains settings for the geocoding provider.
// The API key is shared with the weather provider.
type GeocodingConfig struct {
	DirectURL   string `envconfig:"GEO_DIRECT_URL" default:"http://api.openweathermap.org/geo/1.0/direct"`
	ReverseURL  string `envconfig:"GEO_REVERSE_URL" default:"http://api.openweathermap.org/geo/1.0/reverse"`
	ResultLimit int    `envconfig:"GEO_RESULT_LIMIT" default:"5"`
}

// LocationConfig contains settings for host position detection
type LocationConfig struct {
	Enabled        bool   `envconfig:"LOCATION_ENABLED" default:"true"`
	BaseURL        string `envconfig:"LOCATION_BASE_URL" default:"http://ip-api.com/json"`
	TimeoutSeconds int    `envconfig:"LOCATION_TIMEOUT_SECONDS" default:"10"`
}

// CacheConfig contains settings for the snapshot cache backend
type CacheConfig struct {
	Type              string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`
	RedisDialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	RedisReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	RedisWriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// DatabaseConfig contains durable store connection settings
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"weatherwidget.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherwidget"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WidgetConfig contains tracked-city list settings
type WidgetConfig struct {
	StorageKey             string `envconfig:"WIDGET_STORAGE_KEY" default:"tracked_cities"`
	RefreshIntervalMinutes int    `envconfig:"REFRESH_INTERVAL_MINUTES" default:"30"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Location.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Widget.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather API configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if err := validateHTTPURL("WEATHER_API_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if w.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	return nil
}

// Validate checks geocoding configuration
func (g *GeocodingConfig) Validate() error {
	if err := validateHTTPURL("GEO_DIRECT_URL", g.DirectURL); err != nil {
		return err
	}
	if err := validateHTTPURL("GEO_REVERSE_URL", g.ReverseURL); err != nil {
		return err
	}
	if g.ResultLimit < 1 {
		return errors.NewConfigurationError("GEO_RESULT_LIMIT must be at least 1", nil)
	}
	return nil
}

// Validate checks location detection configuration
func (l *LocationConfig) Validate() error {
	if !l.Enabled {
		return nil
	}
	if err := validateHTTPURL("LOCATION_BASE_URL", l.BaseURL); err != nil {
		return err
	}
	if l.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("LOCATION_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}

// Validate checks snapshot cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty", nil)
	}
	return nil
}

// Validate checks durable store configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty", nil)
		}
	case "postgres":
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.ValidateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks widget configuration
func (w *WidgetConfig) Validate() error {
	if w.StorageKey == "" {
		return errors.NewConfigurationError("WIDGET_STORAGE_KEY cannot be empty", nil)
	}
	if w.RefreshIntervalMinutes < 1 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	if w.RefreshIntervalMinutes > 1440 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}

func validateHTTPURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
