package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"webPerfAnalyzerGO/internal/config"
	"webPerfAnalyzerGO/internal/middleware"
	"webPerfAnalyzerGO/internal/models"
	"webPerfAnalyzerGO/internal/probe"
	"webPerfAnalyzerGO/internal/report"
	"webPerfAnalyzerGO/internal/repository"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	repo       repository.Repository
	analyzer   *probe.Analyzer
	sink       report.Writer
	auth       *middleware.APIKeyAuth
	logger     *slog.Logger
	config     *config.Config
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, repo repository.Repository, analyzer *probe.Analyzer, sink report.Writer, logger *slog.Logger) *Server {
	// Set Gin mode
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create API key auth middleware
	auth := middleware.NewAPIKeyAuth(&cfg.Auth, logger)

	// Create the server
	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		repo:     repo,
		analyzer: analyzer,
		sink:     sink,
		auth:     auth,
		logger:   logger,
		config:   cfg,
	}

	// Register routes
	s.registerRoutes()

	return s
}

// Router exposes the underlying gin engine, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// registerRoutes sets up all the routes for the server
func (s *Server) registerRoutes() {
	// Health check
	s.router.GET("/health", s.healthHandler)

	// Public API routes
	public := s.router.Group("/api")
	{
		// Analyze URL (public endpoint for demo purposes)
		public.POST("/analyze", s.analyzeURLHandler)
	}

	// Protected API routes
	protected := s.router.Group("/api")
	protected.Use(s.auth.Authenticate())
	{
		// Get a stored report by ID
		protected.GET("/analysis/:id", s.getReportHandler)

		// Get recent reports
		protected.GET("/analyses", s.getRecentReportsHandler)
	}
}

// healthHandler handles health check requests
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"mode":   s.analyzer.Mode().String(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

// analyzeURLHandler runs the full probe pipeline against the submitted
// URL. A malformed request body is the only hard error; once probing
// starts, failures degrade to null fields and the run always returns a
// report.
func (s *Server) analyzeURLHandler(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status_code": http.StatusBadRequest,
			"message":     "Invalid request",
			"error":       err.Error(),
		})
		return
	}

	// The run deliberately has no deadline of its own; each probe is
	// bounded only by the client's per-request timeout.
	ctx := c.Request.Context()

	s.logger.Info("Analyzing URL", "url", req.URL)
	result := s.analyzer.RunCompleteAnalysis(ctx, req.URL)

	// Save report to database
	if err := s.repo.SaveReport(ctx, result); err != nil {
		s.logger.Error("Failed to save report", "error", err)
		// Continue anyway, just log the error
	}

	// Persist the report file
	if s.sink != nil {
		if _, err := s.sink.Write(result); err != nil {
			s.logger.Error("Failed to write report file", "error", err)
		}
	}

	// Return result
	c.JSON(http.StatusOK, result)
}

// getReportHandler handles requests to get a stored report by ID
func (s *Server) getReportHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status_code": http.StatusBadRequest,
			"message":     "Missing report ID",
		})
		return
	}

	ctx := c.Request.Context()
	result, err := s.repo.GetReport(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "Failed to get report",
			"error":       err.Error(),
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status_code": http.StatusNotFound,
			"message":     "Report not found",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getRecentReportsHandler handles requests to list recent reports
func (s *Server) getRecentReportsHandler(c *gin.Context) {
	// Default limit to 10
	limit := 10

	// Try to get limit from query parameter
	if limitParam := c.Query("limit"); limitParam != "" {
		if n, err := fmt.Sscanf(limitParam, "%d", &limit); err != nil || n != 1 {
			// Invalid limit, use default
			limit = 10
		}
	}

	// Cap limit to reasonable value
	if limit > 100 {
		limit = 100
	}

	ctx := c.Request.Context()
	results, err := s.repo.GetRecentReports(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to get recent reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "Failed to get recent reports",
			"error":       err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"reports": results,
	})
}
