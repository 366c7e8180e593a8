package providers

import (
	"weatherwidget.app/models"
	"weatherwidget.app/providers/cache"
)

// GeocodingProvider resolves city names to candidate locations and
// coordinates back to a city
type GeocodingProvider interface {
	Search(cityName, countryCode string) ([]models.GeocodedCity, error)
	Reverse(latitude, longitude float64) (*models.GeocodedCity, error)
}

// WeatherProvider fetches current weather conditions for a coordinate pair
type WeatherProvider interface {
	FetchCurrent(latitude, longitude float64) (*models.WeatherSnapshot, error)
}

// LocationProvider detects the host's current position. Detection failures
// are the standard path, not an exceptional one.
type LocationProvider interface {
	Detect() (*models.Coordinates, error)
}

// CachedCityLookup is consulted by the geocoding provider before hitting the
// network. A hit short-circuits the search with a single-element result.
type CachedCityLookup interface {
	FindCached(cityName, countryCode string) (*models.GeocodedCity, bool)
}

// SnapshotCacheInterface is an alias to avoid circular imports
type SnapshotCacheInterface = cache.SnapshotCacheInterface

// ProviderManagerInterface exposes the assembled providers and their info
type ProviderManagerInterface interface {
	Weather() WeatherProvider
	Geocoding() GeocodingProvider
	Location() LocationProvider
	GetProviderInfo() map[string]interface{}
}
