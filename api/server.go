package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"weatherwidget.app/config"
	widgeterr "weatherwidget.app/errors"
	"weatherwidget.app/models"
	"weatherwidget.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router  *gin.Engine
	db      *gorm.DB
	config  *config.Config
	tracker service.TrackerServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	tracker service.TrackerServiceInterface,
) *Server {
	router := gin.Default()
	router.Use(RequestIDMiddleware())
	registerValidators()

	server := &Server{
		router:  router,
		db:      db,
		config:  config,
		tracker: tracker,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/cities/search", s.searchCities)
		api.GET("/cities", s.listCities)
		api.POST("/cities", s.addCity)
		api.POST("/cities/detect", s.detectCity)
		api.POST("/cities/:weatherId/refresh", s.refreshCity)
		api.DELETE("/cities/:weatherId", s.removeCity)
		api.GET("/debug", s.debugEndpoint)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) searchCities(c *gin.Context) {
	name := c.Query("name")
	country := c.Query("country")

	slog.Debug("Searching cities", "name", name, "country", country)
	results := s.tracker.SearchCities(name, country)
	c.JSON(http.StatusOK, results)
}

func (s *Server) listCities(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Cards())
}

func (s *Server) addCity(c *gin.Context) {
	var req models.AddCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, widgeterr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Adding city", "name", req.Name, "country", req.Country)

	tracked, err := s.tracker.AddCity(req.ToGeocodedCity())
	if err != nil {
		slog.Error("Add city error", "error", err, "name", req.Name)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tracked)
}

func (s *Server) detectCity(c *gin.Context) {
	slog.Debug("Detecting current location")

	tracked, err := s.tracker.DetectCurrentLocation()
	if err != nil {
		slog.Error("Location detection error", "error", err)
		s.handleError(c, err)
		return
	}
	if tracked == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, tracked)
}

func (s *Server) refreshCity(c *gin.Context) {
	weatherID, ok := s.weatherIDParam(c)
	if !ok {
		return
	}

	slog.Debug("Refreshing weather", "weatherId", weatherID)

	if err := s.tracker.RefreshWeather(weatherID); err != nil {
		slog.Error("Refresh error", "error", err, "weatherId", weatherID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weather refreshed successfully"})
}

func (s *Server) removeCity(c *gin.Context) {
	weatherID, ok := s.weatherIDParam(c)
	if !ok {
		return
	}

	slog.Debug("Removing city", "weatherId", weatherID)

	if !s.tracker.RemoveCity(weatherID) {
		s.handleError(c, widgeterr.NewNotFoundError("city is not tracked"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City removed successfully"})
}

func (s *Server) weatherIDParam(c *gin.Context) (int, bool) {
	weatherID, err := strconv.Atoi(c.Param("weatherId"))
	if err != nil {
		s.handleError(c, widgeterr.NewValidationError("weatherId must be an integer"))
		return 0, false
	}
	return weatherID, true
}

func (s *Server) debugEndpoint(c *gin.Context) {
	slog.Debug("Debug endpoint called")

	var storedLists int64
	dbErr := s.db.Model(&models.StoredList{}).Count(&storedLists).Error

	response := gin.H{
		"database": map[string]interface{}{
			"connected":   dbErr == nil,
			"error":       dbErr,
			"storedLists": storedLists,
		},
		"providers":     s.tracker.GetProviderInfo(),
		"trackedCities": len(s.tracker.Cities()),
		"config": map[string]interface{}{
			"refreshIntervalMinutes": s.config.Widget.RefreshIntervalMinutes,
			"storageKey":             s.config.Widget.StorageKey,
		},
	}

	c.JSON(http.StatusOK, response)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *widgeterr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case widgeterr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case widgeterr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case widgeterr.AlreadyExistsError:
			statusCode = http.StatusConflict
			message = appErr.Message
		case widgeterr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case widgeterr.GeolocationError:
			statusCode = http.StatusServiceUnavailable
			message = appErr.Message
		case widgeterr.StorageError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
