package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"weatherwidget.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Driver: %s\n", cfg.Database.Driver)
	log.Printf("  Path: %s\n", cfg.Database.Path)
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nWEATHER API:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.Weather.APIKey))
	log.Printf("  Base URL: %s\n", cfg.Weather.BaseURL)
	log.Printf("  Cache TTL: %d minutes\n", cfg.Weather.CacheTTLMinutes)
	log.Printf("  Cache Enabled: %t\n", cfg.Weather.EnableCache)

	log.Printf("\nGEOCODING:\n")
	log.Printf("  Direct URL: %s\n", cfg.Geocoding.DirectURL)
	log.Printf("  Reverse URL: %s\n", cfg.Geocoding.ReverseURL)
	log.Printf("  Result Limit: %d\n", cfg.Geocoding.ResultLimit)

	log.Printf("\nLOCATION:\n")
	log.Printf("  Enabled: %t\n", cfg.Location.Enabled)
	log.Printf("  Base URL: %s\n", cfg.Location.BaseURL)
	log.Printf("  Timeout: %d seconds\n", cfg.Location.TimeoutSeconds)

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	log.Printf("  Redis Addr: %s\n", cfg.Cache.RedisAddr)

	log.Printf("\nWIDGET:\n")
	log.Printf("  Storage Key: %s\n", cfg.Widget.StorageKey)
	log.Printf("  Refresh Interval: %d minutes\n", cfg.Widget.RefreshIntervalMinutes)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, envVar := range envVars {
		parts := strings.SplitN(envVar, "=", 2)
		if len(parts) != 2 {
			continue
		}

		name, value := parts[0], parts[1]
		if cd.isSensitive(name) {
			value = cd.maskString(value)
		}
		log.Printf("  %s=%s\n", name, value)
	}

	log.Println("===============================")
}

func (cd *ConfigDisplayer) isSensitive(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "KEY") ||
		strings.Contains(upper, "PASSWORD") ||
		strings.Contains(upper, "SECRET") ||
		strings.Contains(upper, "TOKEN")
}

func (cd *ConfigDisplayer) maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
