package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weatherwidget.app/errors"
	"weatherwidget.app/models"
)

// IPLocationProvider detects the host position through an ip-api style
// geolocation endpoint. Every call issues a fresh request; no prior reading
// is reused.
type IPLocationProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewIPLocationProvider(baseURL string, timeout time.Duration) *IPLocationProvider {
	return &IPLocationProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ipLocationResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Detect returns the host's current coordinates, or a geolocation error on
// any failure (network, timeout, or an unsuccessful provider status)
func (p *IPLocationProvider) Detect() (*models.Coordinates, error) {
	resp, err := p.httpClient.Get(p.baseURL)
	if err != nil {
		return nil, errors.NewGeolocationError("location request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewGeolocationError(fmt.Sprintf("location service HTTP %d", resp.StatusCode), nil)
	}

	var location ipLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&location); err != nil {
		return nil, errors.NewGeolocationError("decode location response", err)
	}

	if location.Status != "success" {
		return nil, errors.NewGeolocationError("location lookup rejected: "+location.Message, nil)
	}

	return &models.Coordinates{
		Latitude:  location.Lat,
		Longitude: location.Lon,
	}, nil
}

// disabledLocationProvider stands in when the capability is switched off
type disabledLocationProvider struct{}

// NewDisabledLocationProvider returns a provider whose Detect always reports
// the capability as unavailable
func NewDisabledLocationProvider() LocationProvider {
	return disabledLocationProvider{}
}

func (disabledLocationProvider) Detect() (*models.Coordinates, error) {
	return nil, errors.NewGeolocationError("location detection is disabled", nil)
}
