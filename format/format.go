// Package format contains the pure projection helpers that turn raw weather
// readings into display-ready values. No side effects, no network access.
package format

import (
	"fmt"
	"math"

	"weatherwidget.app/models"
)

// iconServiceURL is the template for decorative card icons
const iconServiceURL = "https://api.iconify.design/%s.svg"

// windDirections holds the 16 compass points, spaced 22.5 degrees apart
var windDirections = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

const windSectorSize = 360.0 / float64(len(windDirections))

// WindDirection maps wind degrees to the nearest compass point. Sector
// boundaries sit at the midpoints between named directions; a reading exactly
// on a boundary stays with the lower sector. 360 wraps back to "N".
func WindDirection(deg float64) string {
	index := int(math.Ceil(deg/windSectorSize-0.5)) % len(windDirections)
	if index < 0 {
		index += len(windDirections)
	}
	return windDirections[index]
}

// WindText maps a wind speed in m/s to a descriptive label. Thresholds are
// exclusive upper bounds checked in ascending order.
func WindText(speed float64) string {
	switch {
	case speed < 1:
		return "Calm"
	case speed < 5:
		return "Light breeze"
	case speed < 11:
		return "Moderate breeze"
	case speed < 19:
		return "Strong breeze"
	default:
		return "Storm"
	}
}

// DewPoint estimates the dew point from temperature (°C) and relative
// humidity (%), rounded to 2 decimal places. This is the simple linear
// approximation, not the Magnus formula.
func DewPoint(temperature, humidity float64) float64 {
	return roundTo(temperature-(100-humidity)/5, 2)
}

// VisibilityKilometers converts visibility in meters to kilometers,
// rounded to 3 decimal places
func VisibilityKilometers(meters float64) float64 {
	return roundTo(meters/1000, 3)
}

// IconURL returns the icon service URL for an icon identifier. The
// identifier is not validated; unknown names yield a well-formed URL that
// the icon service will reject.
func IconURL(iconName string) string {
	return fmt.Sprintf(iconServiceURL, iconName)
}

// BuildWeatherCard projects a tracked city and its latest snapshot into a
// weather card. A nil snapshot yields a card without a weather summary.
// The first entry of the condition list supplies description and icon.
func BuildWeatherCard(city models.TrackedCity, snapshot *models.WeatherSnapshot) models.WeatherCard {
	card := models.WeatherCard{
		City: models.CardCity{
			Name:    city.Name,
			Country: city.Country,
			State:   city.State,
		},
	}

	if snapshot == nil {
		return card
	}

	var description, icon string
	if len(snapshot.Weather) > 0 {
		description = snapshot.Weather[0].Description
		icon = snapshot.Weather[0].Icon
	}

	card.Weather = &models.CardWeather{
		Description: description,
		Icon:        icon,
		Temperature: snapshot.Main.Temp,
		FeelsLike:   snapshot.Main.FeelsLike,
		Wind: models.CardWind{
			Direction: WindDirection(snapshot.Wind.Deg),
			Speed:     snapshot.Wind.Speed,
			Text:      WindText(snapshot.Wind.Speed),
		},
		Humidity:   snapshot.Main.Humidity,
		Visibility: VisibilityKilometers(snapshot.Visibility),
		DewPoint:   DewPoint(snapshot.Main.Temp, snapshot.Main.Humidity),
		Pressure:   snapshot.Main.Pressure,
	}

	return card
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
