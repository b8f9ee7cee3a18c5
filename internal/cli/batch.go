package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newstrust/internal/pipeline"
	"github.com/ppiankov/newstrust/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple articles from a file in parallel",
	Long: `Batch analyzes many articles concurrently:
- Read article URLs from the input file (one per line, # for comments)
- Analyze articles in parallel with a configurable worker count
- Search queries and article fetches share one per-host rate limiter
- Write a JSON and a Markdown report for each article

Example:
  newstrust batch urls.txt
  newstrust batch urls.txt --concurrency 8 --output-dir ./reports
  newstrust batch urls.txt --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of articles analyzed in parallel (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./newstrust-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 20*time.Minute, "total timeout for batch processing")
	addPipelineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := setupPipeline(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  newstrust Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  Extraction:   %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "\n")

	analyzer, err := pipeline.New(cfg, logger, pipeline.Options{NoCache: !cfg.Cache.Enabled})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	urls, err := worker.ReadURLsFromFile(file)
	if err != nil {
		return fmt.Errorf("read URLs: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d URLs\n", len(urls))
	fmt.Fprintf(os.Stderr, "⚙️  Processing URLs with %d workers...\n\n", cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(analyzer, cfg.Concurrency.Workers)
	results := processor.ProcessURLs(ctx, urls)

	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		base := filepath.Join(outputDir, fmt.Sprintf("%03d-%s", result.Index+1, sanitizeFilename(slugFromURL(result.URL))))
		if result.Report != nil {
			if err := renderer.RenderJSON(result.Report, base+".json"); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			}
			if err := renderer.RenderMarkdown(result.Report, base+".md"); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			}
		}

		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (grade: %s, articles: %d, trusted: %d)\n",
			result.URL, result.Report.Score.Grade, result.Report.Score.TotalArticles, result.Report.Score.TrustedCount)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// slugFromURL builds a readable file stem from the host and last path segment
func slugFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return host
	}
	segments := strings.Split(path, "/")
	return host + "-" + segments[len(segments)-1]
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	s = strings.Trim(s, ".-_")
	if s == "" {
		s = "report"
	}

	// Limit length
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}

	return s
}
