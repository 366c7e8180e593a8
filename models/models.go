// Package models defines data structures used throughout the application
package models

import "time"

// GeocodedCity identifies a place as returned by the geocoding provider.
// Two cities are considered the same place when their coordinates are equal,
// regardless of name or locale variants.
type GeocodedCity struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Latitude   float64           `json:"lat"`
	Longitude  float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
}

// SameCoordinates reports whether both cities point at the same place
func (c GeocodedCity) SameCoordinates(other GeocodedCity) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

// TrackedCity is a geocoded city the user chose to monitor, linked to the
// provider-assigned weather station id of its latest snapshot
type TrackedCity struct {
	GeocodedCity
	WeatherID int `json:"weatherId"`
}

// WeatherCondition is one entry of the condition list in a snapshot
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Coordinates is a latitude/longitude pair in floating point degrees
type Coordinates struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
}

// MainMetrics holds temperature and pressure readings of a snapshot
type MainMetrics struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	SeaLevel  float64 `json:"sea_level"`
	GrndLevel float64 `json:"grnd_level"`
}

// Wind holds wind readings of a snapshot
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust"`
}

// Clouds holds the cloud cover percentage of a snapshot
type Clouds struct {
	All int `json:"all"`
}

// Precipitation holds an accumulated rain or snow volume
type Precipitation struct {
	OneHour float64 `json:"1h"`
}

// SysInfo holds provider metadata and sunrise/sunset timestamps
type SysInfo struct {
	Type    int    `json:"type"`
	ID      int    `json:"id"`
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// WeatherSnapshot is a point-in-time weather reading for a tracked city.
// A new fetch for the same station id replaces the prior snapshot wholesale;
// no history is retained.
type WeatherSnapshot struct {
	Coord      Coordinates        `json:"coord"`
	Weather    []WeatherCondition `json:"weather"`
	Base       string             `json:"base"`
	Main       MainMetrics        `json:"main"`
	Visibility float64            `json:"visibility"`
	Wind       Wind               `json:"wind"`
	Clouds     Clouds             `json:"clouds"`
	Rain       *Precipitation     `json:"rain,omitempty"`
	Snow       *Precipitation     `json:"snow,omitempty"`
	Dt         int64              `json:"dt"`
	Sys        SysInfo            `json:"sys"`
	Timezone   int                `json:"timezone"`
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Cod        int                `json:"cod"`
}

// CardCity identifies the city on a weather card
type CardCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	State   string `json:"state"`
}

// CardWind is the display-ready wind summary on a weather card
type CardWind struct {
	Direction string  `json:"direction"`
	Speed     float64 `json:"speed"`
	Text      string  `json:"text"`
}

// CardWeather is the display-ready weather summary on a weather card
type CardWeather struct {
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Temperature float64  `json:"temperature"`
	FeelsLike   float64  `json:"feelsLike"`
	Wind        CardWind `json:"wind"`
	Humidity    float64  `json:"humidity"`
	Visibility  float64  `json:"visibility"`
	DewPoint    float64  `json:"dewPoint"`
	Pressure    float64  `json:"pressure"`
}

// WeatherCard is the display-oriented projection of a tracked city and its
// latest snapshot. Weather is nil when no snapshot is available yet.
type WeatherCard struct {
	City    CardCity     `json:"city"`
	Weather *CardWeather `json:"weather"`
}

// StoredList is a durable string-keyed JSON blob row. The tracked-city list
// is serialized under a single fixed key.
type StoredList struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     []byte    `json:"-" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddCityRequest represents data required to start tracking a city
type AddCityRequest struct {
	Name       string            `json:"name" binding:"required"`
	LocalNames map[string]string `json:"local_names"`
	Latitude   float64           `json:"lat" binding:"latitude"`
	Longitude  float64           `json:"lon" binding:"longitude"`
	Country    string            `json:"country" binding:"required,countrycode"`
	State      string            `json:"state"`
}

// ToGeocodedCity converts the request payload to its domain representation
func (r AddCityRequest) ToGeocodedCity() GeocodedCity {
	return GeocodedCity{
		Name:       r.Name,
		LocalNames: r.LocalNames,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Country:    r.Country,
		State:      r.State,
	}
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
