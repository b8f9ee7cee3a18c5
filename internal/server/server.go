package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/present"
)

// ReportAnalyzer runs the full pipeline for one article
type ReportAnalyzer interface {
	Analyze(ctx context.Context, url string) *model.AnalysisReport
}

// URLScorer grades a URL list
type URLScorer interface {
	ScoreWithHit(urls []string) (model.ScoreReport, bool)
}

// New builds the HTTP API. analyzer may be nil when credentials are not
// configured; /api/v1/analyze then answers 503.
func New(analyzer ReportAnalyzer, scorer URLScorer, logger *log.Logger) *gin.Engine {
	logger = logging.OrDefault(logger)

	g := gin.New()
	g.Use(requestLogger(logger), gin.Recovery())

	h := handlers{analyzer: analyzer, scorer: scorer, logger: logger}
	g.GET("/healthz", h.health)

	api := g.Group("/api/v1")
	api.POST("/analyze", h.analyze)
	api.POST("/score", h.score)

	return g
}

// Run serves the API on addr until ctx is cancelled
func Run(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	logger = logging.OrDefault(logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type handlers struct {
	analyzer ReportAnalyzer
	scorer   URLScorer
	logger   *log.Logger
}

func (h handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "analyze": h.analyzer != nil})
}

func (h handlers) analyze(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if h.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "analysis is not configured: search and claim extraction credentials are required"})
		return
	}

	report := h.analyzer.Analyze(c.Request.Context(), req.URL)

	status := http.StatusOK
	if report.Failure != nil && report.Failure.Kind == model.FailureConfig {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"report": report, "view": present.BuildView(report)})
}

func (h handlers) score(c *gin.Context) {
	var req struct {
		URLs []string `json:"urls" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	report, hit := h.scorer.ScoreWithHit(req.URLs)
	view := present.BuildView(&model.AnalysisReport{Score: report})
	c.JSON(http.StatusOK, gin.H{"score": report, "cached": hit, "view": view})
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Millisecond),
		)
	}
}
