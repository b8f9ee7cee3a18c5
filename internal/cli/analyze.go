package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/pipeline"
	"github.com/ppiankov/newstrust/internal/present"
	"github.com/ppiankov/newstrust/internal/session"
)

var (
	outJSON        string
	outMD          string
	textFile       string
	hideReport     bool
	analyzeTimeout time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url> [url...]",
	Short: "Grade the trustworthiness of news articles",
	Long: `Analyze runs the full pipeline for each article:
- Fetch the article and extract its body text
- Extract the key claims with a language model
- Search the news index for other articles on each claim
- Grade the article by how many (credible) outlets corroborate it

Several URLs are analyzed one after another. --json and --md need a
single article.

Requires NAVER_CLIENT_ID, NAVER_CLIENT_SECRET and a key for the claim
extraction provider (OPENAI_API_KEY by default).

Example:
  newstrust analyze https://n.news.naver.com/mnews/article/001/0014000000
  newstrust analyze https://example.com/news/1 --json report.json --md report.md
  newstrust analyze --text-file article.txt --llm-provider ollama --llm-model qwen2.5`,
	Args: func(cmd *cobra.Command, args []string) error {
		if textFile != "" {
			return cobra.NoArgs(cmd, args)
		}
		if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
			return err
		}
		if len(args) > 1 && (outJSON != "" || outMD != "") {
			return fmt.Errorf("--json and --md accept a single URL, got %d", len(args))
		}
		return nil
	},
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write the JSON report to this path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "write the Markdown report to this path")
	analyzeCmd.Flags().StringVar(&textFile, "text-file", "", "analyze text from a file instead of fetching a URL")
	analyzeCmd.Flags().BoolVar(&hideReport, "hide-report", false, "print only the grade line, not the detailed report")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "overall analysis timeout per article")
	addPipelineFlags(analyzeCmd)
}

var phaseMessages = map[session.Phase]string{
	session.PhaseFetching:   "Fetching article...",
	session.PhaseExtracting: "Extracting claims...",
	session.PhaseSearching:  "Searching for corroborating articles...",
	session.PhaseScoring:    "Scoring sources...",
}

// progressPrinter follows pipeline stages on sess and prints each new phase
func progressPrinter(w io.Writer, sess *session.Session) func(model.Stage) {
	return func(stage model.Stage) {
		if !sess.Running() {
			return
		}
		next, err := sess.Advance(stage)
		if err != nil {
			return
		}
		if msg, ok := phaseMessages[next.Phase]; ok && (next.Phase != sess.Phase || stage == model.StageFetch) {
			fmt.Fprintf(w, "⚙️  %s\n", msg)
		}
		*sess = next
	}
}

// finish records the report on sess: done for a full report, failed for a
// degraded one
func finish(sess session.Session, report *model.AnalysisReport) (session.Session, error) {
	if report.Degraded() {
		return sess.Fail(report)
	}
	return sess.Complete(report)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := setupPipeline(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	sess := session.New()
	analyzer, err := pipeline.New(cfg, logger, pipeline.Options{
		NoCache:  !cfg.Cache.Enabled,
		Progress: progressPrinter(os.Stderr, &sess),
	})
	if err != nil {
		return err
	}

	targets := args
	if textFile != "" {
		targets = []string{textFile}
	}

	failed := 0
	for i, target := range targets {
		if i > 0 {
			fmt.Fprintln(os.Stderr)
		}
		sess = sess.Reset()
		if sess, err = sess.Submit(target); err != nil {
			return err
		}

		report, err := runOne(cmd.Context(), analyzer, target)
		if err != nil {
			return err
		}
		if sess, err = finish(sess, report); err != nil {
			return err
		}
		if hideReport {
			if sess, err = sess.ToggleReport(); err != nil {
				return err
			}
		}

		if err := writeReports(report, outJSON, outMD); err != nil {
			return err
		}

		view := present.BuildView(report)
		if sess.ShowReport {
			fmt.Fprintln(os.Stderr)
			if len(targets) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", target)
			}
			if err := present.RenderTerminal(cmd.OutOrStdout(), view, cfg.Output.Color); err != nil {
				return fmt.Errorf("render report: %w", err)
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", view.GradeLabel, view.Summary)
		}

		if sess.Phase == session.PhaseFailed {
			failed++
			logger.Warn("analysis stopped", "target", target, "stage", report.Failure.Stage, "kind", report.Failure.Kind)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses stopped early", failed, len(targets))
	}
	return nil
}

// runOne analyzes a single URL, or the text file when --text-file is set
func runOne(parent context.Context, analyzer *pipeline.Analyzer, target string) (*model.AnalysisReport, error) {
	ctx, cancel := context.WithTimeout(parent, analyzeTimeout)
	defer cancel()

	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("read text file: %w", err)
		}
		return analyzer.AnalyzeText(ctx, string(data)), nil
	}
	return analyzer.Analyze(ctx, target), nil
}

func writeReports(report *model.AnalysisReport, jsonPath, mdPath string) error {
	renderer := pipeline.NewRenderer()
	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
	}
	return nil
}
