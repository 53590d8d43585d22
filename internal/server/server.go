package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/core"
	"github.com/agenthands/naics/internal/core/model"
	"github.com/agenthands/naics/internal/core/reconcile"
	"github.com/agenthands/naics/internal/llm"
	"github.com/agenthands/naics/internal/search"
)

// Detector runs one classification turn.
type Detector interface {
	Detect(ctx context.Context, company string, report func(core.Event)) (*core.Outcome, error)
}

type Server struct {
	Detector      Detector
	Logger        *zap.Logger
	PreviewLength int

	registry *prometheus.Registry
	metrics  *metrics
}

func NewServer(d Detector, logger *zap.Logger, previewLength int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		Detector:      d,
		Logger:        logger,
		PreviewLength: previewLength,
		registry:      reg,
		metrics:       newMetrics(reg),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.POST("/classify", s.Classify)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return r
}

type ClassifyRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

type snippetResponse struct {
	Title   string `json:"title"`
	Preview string `json:"preview"`
}

type ClassifyResponse struct {
	TurnID        string            `json:"turn_id"`
	Results       []model.Result    `json:"results"`
	SearchResults []snippetResponse `json:"search_results"`
	Searched      bool              `json:"searched"`
}

func (s *Server) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := s.Detector.Detect(c.Request.Context(), req.CompanyName, s.metrics.observeEvent)
	if err != nil {
		status := statusFor(err)
		s.metrics.turns.WithLabelValues("error").Inc()
		s.Logger.Warn("classify failed",
			zap.String("company", req.CompanyName),
			zap.Int("status", status),
			zap.Error(err))
		c.JSON(status, gin.H{"error": core.UserMessage(err)})
		return
	}
	s.metrics.turns.WithLabelValues("ok").Inc()

	resp := ClassifyResponse{
		TurnID:        out.TurnID,
		Results:       out.Results,
		SearchResults: make([]snippetResponse, 0, len(out.Snippets)),
		Searched:      out.Searched,
	}
	for _, sn := range out.Snippets {
		resp.SearchResults = append(resp.SearchResults, snippetResponse{
			Title:   sn.Title,
			Preview: search.Preview(sn.Body, s.PreviewLength),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyCompany):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, reconcile.ErrMalformedGuess):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.Logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()))
	}
}
