package service

import (
	"weatherwidget.app/models"
	"weatherwidget.app/providers"
)

// ProviderManagerInterface is an alias to the providers interface
type ProviderManagerInterface = providers.ProviderManagerInterface

// TrackerServiceInterface defines the operations of the city tracker
type TrackerServiceInterface interface {
	Initialize() error
	SearchCities(cityName, countryCode string) []models.GeocodedCity
	AddCity(city models.GeocodedCity) (*models.TrackedCity, error)
	RemoveCity(weatherID int) bool
	RefreshWeather(weatherID int) error
	RefreshAll()
	DetectCurrentLocation() (*models.TrackedCity, error)
	Cities() []models.TrackedCity
	Cards() []models.WeatherCard
	GetProviderInfo() map[string]interface{}
}

// CityStoreInterface defines the persistence operations the tracker needs
type CityStoreInterface interface {
	LoadCities() ([]models.TrackedCity, error)
	SaveCities(cities []models.TrackedCity) error
}

// Ensure implementations satisfy interfaces
var _ TrackerServiceInterface = (*TrackerService)(nil)
