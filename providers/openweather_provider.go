package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherwidget.app/models"
)

// OpenWeatherMapProvider fetches current weather by coordinates.
// All requests use metric units.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenWeatherMapProvider(apiKey, baseURL string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCurrent retrieves the current weather snapshot for a coordinate pair
func (p *OpenWeatherMapProvider) FetchCurrent(latitude, longitude float64) (*models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")

	resp, err := p.httpClient.Get(p.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("openweathermap API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var snapshot models.WeatherSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode openweathermap response: %w", err)
	}

	return &snapshot, nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("openweathermap: invalid API key")
	case http.StatusNotFound:
		return fmt.Errorf("openweathermap: location not found")
	case http.StatusTooManyRequests:
		return fmt.Errorf("openweathermap: rate limit exceeded")
	case http.StatusServiceUnavailable:
		return fmt.Errorf("openweathermap: service unavailable")
	default:
		return fmt.Errorf("openweathermap: HTTP %d error", statusCode)
	}
}
