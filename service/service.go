// Package service implements the city tracking orchestrator
package service

import (
	"log/slog"
	"sync"

	apperrors "weatherwidget.app/errors"
	"weatherwidget.app/format"
	"weatherwidget.app/models"
)

// TrackerService coordinates the tracked-city list, its persistence and the
// weather snapshots attached to each city. All operations are serialized
// through a single mutex; network fetches run outside the lock and re-check
// state after reacquiring it.
type TrackerService struct {
	mu        sync.Mutex
	cities    []models.TrackedCity
	snapshots map[int]*models.WeatherSnapshot

	store     CityStoreInterface
	providers ProviderManagerInterface
}

// NewTrackerService creates a tracker backed by the given store and providers
func NewTrackerService(store CityStoreInterface, providerManager ProviderManagerInterface) *TrackerService {
	return &TrackerService{
		snapshots: make(map[int]*models.WeatherSnapshot),
		store:     store,
		providers: providerManager,
	}
}

// Initialize loads the persisted city list, drops duplicate coordinates and
// fetches a fresh snapshot for every city
func (s *TrackerService) Initialize() error {
	stored, err := s.store.LoadCities()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cities = dedupeByCoordinates(stored)
	if len(s.cities) != len(stored) {
		slog.Warn("dropped duplicate stored cities", "stored", len(stored), "kept", len(s.cities))
		s.persistLocked()
	}
	s.mu.Unlock()

	slog.Info("tracker initialized", "cities", len(s.cities))
	s.RefreshAll()
	return nil
}

// SearchCities returns geocoding candidates for a city name. Lookup failures
// degrade to an empty result list.
func (s *TrackerService) SearchCities(cityName, countryCode string) []models.GeocodedCity {
	results, err := s.providers.Geocoding().Search(cityName, countryCode)
	if err != nil {
		slog.Error("city search failed", "city", cityName, "error", err)
		return []models.GeocodedCity{}
	}
	if results == nil {
		return []models.GeocodedCity{}
	}
	return results
}

// AddCity starts tracking a city. Adding coordinates that are already tracked
// is a no-op returning the existing entry. The weather fetch must succeed
// before the city is admitted to the list.
func (s *TrackerService) AddCity(city models.GeocodedCity) (*models.TrackedCity, error) {
	s.mu.Lock()
	if existing := s.findByCoordinatesLocked(city); existing != nil {
		entry := *existing
		s.mu.Unlock()
		return &entry, nil
	}
	s.mu.Unlock()

	snapshot, err := s.providers.Weather().FetchCurrent(city.Latitude, city.Longitude)
	if err != nil {
		slog.Error("weather fetch failed, city not added", "city", city.Name, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have added the same city while we were fetching.
	if existing := s.findByCoordinatesLocked(city); existing != nil {
		entry := *existing
		return &entry, nil
	}

	tracked := models.TrackedCity{GeocodedCity: city, WeatherID: snapshot.ID}
	s.cities = append(s.cities, tracked)
	s.snapshots[snapshot.ID] = snapshot
	s.persistLocked()

	slog.Info("city added", "city", city.Name, "country", city.Country, "weatherId", snapshot.ID)
	return &tracked, nil
}

// RemoveCity stops tracking the city whose snapshot carries the given
// weather ID. Returns false when no such city is tracked.
func (s *TrackerService) RemoveCity(weatherID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, city := range s.cities {
		if city.WeatherID == weatherID {
			s.cities = append(s.cities[:i], s.cities[i+1:]...)
			delete(s.snapshots, weatherID)
			s.persistLocked()
			slog.Info("city removed", "city", city.Name, "weatherId", weatherID)
			return true
		}
	}
	return false
}

// RefreshWeather refetches the snapshot for a single tracked city
func (s *TrackerService) RefreshWeather(weatherID int) error {
	s.mu.Lock()
	var target *models.TrackedCity
	for i := range s.cities {
		if s.cities[i].WeatherID == weatherID {
			entry := s.cities[i]
			target = &entry
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return apperrors.NewNotFoundError("city is not tracked")
	}

	return s.refreshCity(*target)
}

// RefreshAll refetches snapshots for every tracked city. Individual failures
// are logged and the stale snapshot is kept.
func (s *TrackerService) RefreshAll() {
	s.mu.Lock()
	cities := make([]models.TrackedCity, len(s.cities))
	copy(cities, s.cities)
	s.mu.Unlock()

	for _, city := range cities {
		if err := s.refreshCity(city); err != nil {
			slog.Error("weather refresh failed", "city", city.Name, "error", err)
		}
	}
}

// DetectCurrentLocation resolves the caller's coordinates, reverse-geocodes
// them and tracks the resulting city. Returns (nil, nil) when the coordinates
// resolve to no known city.
func (s *TrackerService) DetectCurrentLocation() (*models.TrackedCity, error) {
	coords, err := s.providers.Location().Detect()
	if err != nil {
		return nil, err
	}

	city, err := s.providers.Geocoding().Reverse(coords.Latitude, coords.Longitude)
	if err != nil {
		return nil, err
	}
	if city == nil {
		slog.Warn("no city found for detected coordinates",
			"lat", coords.Latitude, "lon", coords.Longitude)
		return nil, nil
	}

	return s.AddCity(*city)
}

// Cities returns a copy of the tracked-city list in tracking order
func (s *TrackerService) Cities() []models.TrackedCity {
	s.mu.Lock()
	defer s.mu.Unlock()

	cities := make([]models.TrackedCity, len(s.cities))
	copy(cities, s.cities)
	return cities
}

// Cards renders the display card for every tracked city. Cities whose
// snapshot is missing render with an empty weather section.
func (s *TrackerService) Cards() []models.WeatherCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]models.WeatherCard, 0, len(s.cities))
	for _, city := range s.cities {
		cards = append(cards, format.BuildWeatherCard(city, s.snapshots[city.WeatherID]))
	}
	return cards
}

// GetProviderInfo returns diagnostic information about the provider stack
func (s *TrackerService) GetProviderInfo() map[string]interface{} {
	return s.providers.GetProviderInfo()
}

func (s *TrackerService) refreshCity(city models.TrackedCity) error {
	snapshot, err := s.providers.Weather().FetchCurrent(city.Latitude, city.Longitude)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The city may have been removed while the fetch was in flight.
	for i := range s.cities {
		if s.cities[i].SameCoordinates(city.GeocodedCity) {
			if s.cities[i].WeatherID != snapshot.ID {
				delete(s.snapshots, s.cities[i].WeatherID)
				s.cities[i].WeatherID = snapshot.ID
				s.persistLocked()
			}
			s.snapshots[snapshot.ID] = snapshot
			return nil
		}
	}
	return nil
}

func (s *TrackerService) findByCoordinatesLocked(city models.GeocodedCity) *models.TrackedCity {
	for i := range s.cities {
		if s.cities[i].SameCoordinates(city) {
			return &s.cities[i]
		}
	}
	return nil
}

// persistLocked writes the current list through to the store. Store failures
// are logged; the in-memory list stays authoritative for the session.
func (s *TrackerService) persistLocked() {
	if err := s.store.SaveCities(s.cities); err != nil {
		slog.Error("persisting city list failed", "error", err)
	}
}

func dedupeByCoordinates(cities []models.TrackedCity) []models.TrackedCity {
	result := make([]models.TrackedCity, 0, len(cities))
	for _, city := range cities {
		duplicate := false
		for _, kept := range result {
			if kept.SameCoordinates(city.GeocodedCity) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, city)
		}
	}
	return result
}
