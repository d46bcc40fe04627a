// Package server assembles the Fyyur web application: templates, middleware
// and the venue, artist and show routes on one gin engine.
package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/flash"
	"github.com/JonasLeetTheWay/fyyur-go/internal/metrics"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/artist"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/show"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/venue"
	"github.com/JonasLeetTheWay/fyyur-go/internal/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db      *gorm.DB
	respond *views.Responder
	metrics *metrics.Metrics
}

// New builds the router. Call SetupLogging first so the request logger picks
// up the log file.
func New(db *gorm.DB, flashes flash.Store) (*gin.Engine, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{db: db, respond: views.NewResponder(flashes), metrics: metrics.New()}
	if sqlDB, err := db.DB(); err == nil {
		if err := s.metrics.WatchDB(sqlDB); err != nil {
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Logger())
	r.Use(s.metrics.Middleware())
	r.Use(gin.CustomRecovery(s.handlePanic))
	r.NoRoute(s.respond.NotFound)

	s.SetupRoutes(r)
	venue.NewService(db, s.respond).SetupRoutes(r)
	artist.NewService(db, s.respond).SetupRoutes(r)
	show.NewService(db, s.respond).SetupRoutes(r)

	return r, nil
}

func (s *Server) SetupRoutes(r *gin.Engine) {
	r.GET("/", s.Home)
	r.GET("/health", s.HealthCheck)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

func (s *Server) Home(c *gin.Context) {
	s.respond.Page(c, http.StatusOK, "pages/home.html", nil)
}

func (s *Server) HealthCheck(c *gin.Context) {
	if err := database.Ping(s.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "fyyur",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fyyur",
	})
}

func (s *Server) handlePanic(c *gin.Context, recovered any) {
	s.respond.ServerError(c, fmt.Errorf("panic: %v", recovered))
	c.Abort()
}

// SetupLogging tees the request log and the application log into path.
// An empty path leaves both on the console.
func SetupLogging(path string) (io.Closer, error) {
	if path == "" {
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	gin.DefaultWriter = io.MultiWriter(os.Stdout, f)
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, f)
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
