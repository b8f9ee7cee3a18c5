package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/pipeline"
	"github.com/ppiankov/newstrust/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis pipeline as an HTTP JSON API",
	Long: `Serve exposes the pipeline over HTTP:
  GET  /healthz           liveness and whether analysis is configured
  POST /api/v1/analyze    {"url": "..."}    full analysis
  POST /api/v1/score      {"urls": [...]}   scoring only

Without search or claim extraction credentials the server still starts;
/api/v1/analyze then answers 503.

Example:
  newstrust serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
	addPipelineFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setupPipeline(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	scorer, err := pipeline.NewScorer(cfg, logger, !cfg.Cache.Enabled)
	if err != nil {
		return err
	}

	var analyzer server.ReportAnalyzer
	a, err := pipeline.New(cfg, logger, pipeline.Options{NoCache: !cfg.Cache.Enabled})
	var cfgErr *model.ConfigError
	switch {
	case err == nil:
		analyzer = a
	case errors.As(err, &cfgErr):
		logger.Warn("analysis disabled", "field", cfgErr.Field, "reason", cfgErr.Message)
	default:
		return fmt.Errorf("build pipeline: %w", err)
	}

	return server.Run(cmd.Context(), cfg.Server.Addr, server.New(analyzer, scorer, logger), logger)
}
