package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWeatherResponse = `{
	"coord": {"lon": -0.1276, "lat": 51.5073},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"base": "stations",
	"main": {"temp": 17.4, "feels_like": 17.05, "pressure": 1011, "humidity": 72,
		"temp_min": 16.1, "temp_max": 18.5, "sea_level": 1011, "grnd_level": 1007},
	"visibility": 10000,
	"wind": {"speed": 4.12, "deg": 240, "gust": 7.2},
	"clouds": {"all": 75},
	"rain": {"1h": 0.21},
	"dt": 1717754400,
	"sys": {"type": 2, "id": 2075535, "country": "GB", "sunrise": 1717724106, "sunset": 1717783842},
	"timezone": 3600,
	"id": 2643743,
	"name": "London",
	"cod": 200
}`

func TestOpenWeatherMapProvider_FetchCurrent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "51.5073", r.URL.Query().Get("lat"))
			assert.Equal(t, "-0.1276", r.URL.Query().Get("lon"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleWeatherResponse))
		}))
		defer server.Close()

		provider := NewOpenWeatherMapProvider("test-key", server.URL)
		snapshot, err := provider.FetchCurrent(51.5073, -0.1276)

		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 2643743, snapshot.ID)
		assert.Equal(t, "London", snapshot.Name)
		assert.Equal(t, 17.4, snapshot.Main.Temp)
		assert.Equal(t, 72.0, snapshot.Main.Humidity)
		assert.Equal(t, 10000.0, snapshot.Visibility)
		assert.Equal(t, 4.12, snapshot.Wind.Speed)
		assert.Equal(t, 240.0, snapshot.Wind.Deg)
		assert.Equal(t, 75, snapshot.Clouds.All)
		require.NotNil(t, snapshot.Rain)
		assert.Equal(t, 0.21, snapshot.Rain.OneHour)
		assert.Nil(t, snapshot.Snow)
		assert.Equal(t, "GB", snapshot.Sys.Country)
		assert.Equal(t, int64(1717724106), snapshot.Sys.Sunrise)
		assert.Equal(t, 3600, snapshot.Timezone)
		assert.Len(t, snapshot.Weather, 1)
		assert.Equal(t, "broken clouds", snapshot.Weather[0].Description)
	})

	t.Run("HTTPErrors", func(t *testing.T) {
		tests := []struct {
			name     string
			status   int
			expected string
		}{
			{"Unauthorized", http.StatusUnauthorized, "invalid API key"},
			{"NotFound", http.StatusNotFound, "location not found"},
			{"RateLimited", http.StatusTooManyRequests, "rate limit exceeded"},
			{"ServiceUnavailable", http.StatusServiceUnavailable, "service unavailable"},
			{"Teapot", http.StatusTeapot, "HTTP 418 error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()

				provider := NewOpenWeatherMapProvider("test-key", server.URL)
				snapshot, err := provider.FetchCurrent(0, 0)

				assert.Error(t, err)
				assert.Nil(t, snapshot)
				assert.Contains(t, err.Error(), tt.expected)
			})
		}
	})

	t.Run("MalformedResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		provider := NewOpenWeatherMapProvider("test-key", server.URL)
		snapshot, err := provider.FetchCurrent(0, 0)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
	})
}
