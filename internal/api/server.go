package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/foodshedmap/foodshedmap/internal/config"
	"github.com/foodshedmap/foodshedmap/internal/sheets"
	"github.com/foodshedmap/foodshedmap/internal/transform"
)

type Server struct {
	Echo     *echo.Echo
	Pipeline *transform.Pipeline
}

func NewServer(cfg config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	client := sheets.NewClient(cfg.SheetsBaseURL)

	s := &Server{
		Echo:     e,
		Pipeline: transform.NewPipeline(client, cfg.SpreadsheetID, cfg.Schema),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")
	api.GET("/locations", s.handleLocations)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// handleLocations rebuilds the full dataset from the spreadsheet on
// every call, using the caller's Google access token. The token is
// passed through to the Sheets API untouched.
func (s *Server) handleLocations(c echo.Context) error {
	token := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
	}

	dataset, err := s.Pipeline.Run(c.Request().Context(), token)
	if err != nil {
		var apiErr *sheets.APIError
		if errors.As(err, &apiErr) {
			return c.JSON(apiErr.Code, map[string]string{"error": apiErr.Message})
		}
		var schemaErr *transform.SchemaError
		if errors.As(err, &schemaErr) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": schemaErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, dataset)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}
