// Package server wires the HTTP surface of the explorer: the survey page,
// query submission, CSV download, and the metrics endpoint.
package server

import (
	"context"
	"net/http"

	"blsexplorer/config"
	"blsexplorer/models"
	"blsexplorer/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetadataSource is the slice of the loaders the page handlers need.
type MetadataSource interface {
	Surveys(ctx context.Context) (map[string]string, error)
	Metadata(ctx context.Context, surveyName string) (*models.Metadata, error)
}

// DataFetcher is the slice of the API client the submit handler needs.
type DataFetcher interface {
	GetData(ctx context.Context, req models.QueryParams) (models.Table, models.Table, error)
}

// Server is the explorer's HTTP server.
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	source   MetadataSource
	fetcher  DataFetcher
	sessions *session.Store
	registry *prometheus.Registry
}

// New builds the server. registry may be nil to disable /metrics.
func New(cfg *config.Config, source MetadataSource, fetcher DataFetcher, sessions *session.Store, registry *prometheus.Registry) *Server {
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(loadTemplates())

	s := &Server{
		cfg:      cfg,
		router:   router,
		source:   source,
		fetcher:  fetcher,
		sessions: sessions,
		registry: registry,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/query", s.handleQuery)
	s.router.GET("/download.csv", s.handleDownload)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if s.registry != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
}

// Handler exposes the router for an http.Server and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
