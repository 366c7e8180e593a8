package providers

import (
	"log/slog"
	"time"

	"weatherwidget.app/metrics"
	"weatherwidget.app/models"
)

// WeatherLoggerDecorator logs upstream weather calls with their duration and
// records provider call metrics
type WeatherLoggerDecorator struct {
	realProvider WeatherProvider
	providerName string
}

func NewWeatherLoggerDecorator(realProvider WeatherProvider, providerName string) *WeatherLoggerDecorator {
	return &WeatherLoggerDecorator{
		realProvider: realProvider,
		providerName: providerName,
	}
}

func (d *WeatherLoggerDecorator) FetchCurrent(latitude, longitude float64) (*models.WeatherSnapshot, error) {
	slog.Debug("weather request", "provider", d.providerName, "lat", latitude, "lon", longitude)

	start := time.Now()
	snapshot, err := d.realProvider.FetchCurrent(latitude, longitude)
	duration := time.Since(start)

	metrics.RecordProviderCall(d.providerName, err, duration.Seconds())

	if err != nil {
		slog.Error("weather request failed",
			"provider", d.providerName, "lat", latitude, "lon", longitude,
			"duration", duration, "error", err)
		return nil, err
	}

	slog.Debug("weather response",
		"provider", d.providerName, "station_id", snapshot.ID, "duration", duration)
	return snapshot, nil
}
