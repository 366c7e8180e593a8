// Package repository implements the durable store for the tracked-city list
package repository

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	apperrors "weatherwidget.app/errors"
	"weatherwidget.app/models"
)

// CityStore persists the tracked-city list as a single JSON blob under a
// fixed storage key. The whole list is rewritten on every mutation
// (write-through), mirroring how a browser widget would use localStorage.
type CityStore struct {
	db         *gorm.DB
	storageKey string
}

// NewCityStore creates a city store bound to a storage key
func NewCityStore(db *gorm.DB, storageKey string) *CityStore {
	return &CityStore{db: db, storageKey: storageKey}
}

// LoadCities reads and deserializes the stored city list. A missing key
// yields an empty list without error.
func (s *CityStore) LoadCities() ([]models.TrackedCity, error) {
	var record models.StoredList
	result := s.db.First(&record, "key = ?", s.storageKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("read stored city list", result.Error)
	}

	var cities []models.TrackedCity
	if err := json.Unmarshal(record.Value, &cities); err != nil {
		return nil, apperrors.NewStorageError("corrupt stored city list", err)
	}

	slog.Debug("loaded stored city list", "key", s.storageKey, "count", len(cities))
	return cities, nil
}

// SaveCities serializes the full city list and overwrites the stored blob
func (s *CityStore) SaveCities(cities []models.TrackedCity) error {
	if cities == nil {
		cities = []models.TrackedCity{}
	}

	data, err := json.Marshal(cities)
	if err != nil {
		return apperrors.NewStorageError("serialize city list", err)
	}

	record := models.StoredList{Key: s.storageKey, Value: data}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record)
	if result.Error != nil {
		return apperrors.NewStorageError("write stored city list", result.Error)
	}

	slog.Debug("persisted city list", "key", s.storageKey, "count", len(cities))
	return nil
}

// FindCached scans the stored city list for a case-insensitive name+country
// match. Used by the geocoding provider to skip the network for cities the
// user already tracks. Store failures degrade to a miss.
func (s *CityStore) FindCached(cityName, countryCode string) (*models.GeocodedCity, bool) {
	cities, err := s.LoadCities()
	if err != nil {
		slog.Error("cached city lookup failed", "error", err)
		return nil, false
	}

	for _, city := range cities {
		if strings.EqualFold(city.Name, cityName) && strings.EqualFold(city.Country, countryCode) {
			matched := city.GeocodedCity
			return &matched, true
		}
	}

	return nil, false
}
