package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherwidget.app/models"
)

// OpenWeatherGeocodingProvider resolves city names via the OpenWeatherMap
// geocoding API. When a country code is supplied, the tracked-city cache is
// consulted first and a hit skips the network entirely.
type OpenWeatherGeocodingProvider struct {
	apiKey     string
	directURL  string
	reverseURL string
	limit      int
	cityCache  CachedCityLookup
	httpClient *http.Client
}

// GeocodingProviderOptions configures a geocoding provider
type GeocodingProviderOptions struct {
	APIKey      string
	DirectURL   string
	ReverseURL  string
	ResultLimit int
	CityCache   CachedCityLookup
}

func NewOpenWeatherGeocodingProvider(opts GeocodingProviderOptions) *OpenWeatherGeocodingProvider {
	return &OpenWeatherGeocodingProvider{
		apiKey:     opts.APIKey,
		directURL:  opts.DirectURL,
		reverseURL: opts.ReverseURL,
		limit:      opts.ResultLimit,
		cityCache:  opts.CityCache,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search resolves a city name (plus optional country code) to up to `limit`
// candidate locations. An empty city name yields an empty result without a
// network call. With a country code, an exact case-insensitive name+country
// match disambiguates the result down to a single entry.
func (p *OpenWeatherGeocodingProvider) Search(cityName, countryCode string) ([]models.GeocodedCity, error) {
	if cityName == "" {
		return []models.GeocodedCity{}, nil
	}

	if countryCode != "" && p.cityCache != nil {
		if cached, found := p.cityCache.FindCached(cityName, countryCode); found {
			slog.Debug("geocoding cache hit", "city", cityName, "country", countryCode)
			return []models.GeocodedCity{*cached}, nil
		}
	}

	query := cityName
	if countryCode != "" {
		query = cityName + "," + countryCode
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("appid", p.apiKey)
	params.Set("limit", strconv.Itoa(p.limit))

	cities, err := p.fetchCities(p.directURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	if countryCode != "" {
		for _, city := range cities {
			if strings.EqualFold(city.Name, cityName) && strings.EqualFold(city.Country, countryCode) {
				return []models.GeocodedCity{city}, nil
			}
		}
	}

	return cities, nil
}

// Reverse resolves coordinates to the nearest known city. Returns nil
// without error when the provider knows no city at that point.
func (p *OpenWeatherGeocodingProvider) Reverse(latitude, longitude float64) (*models.GeocodedCity, error) {
	params := url.Values{}
	params.Set("appid", p.apiKey)
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))

	cities, err := p.fetchCities(p.reverseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	if len(cities) == 0 {
		return nil, nil
	}

	return &cities[0], nil
}

func (p *OpenWeatherGeocodingProvider) fetchCities(requestURL string) ([]models.GeocodedCity, error) {
	resp, err := p.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("geocoding API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: HTTP %d error", resp.StatusCode)
	}

	var cities []models.GeocodedCity
	if err := json.NewDecoder(resp.Body).Decode(&cities); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}

	return cities, nil
}
