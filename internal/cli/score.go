package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/pipeline"
	"github.com/ppiankov/newstrust/internal/present"
	"github.com/ppiankov/newstrust/internal/worker"
)

var scoreJSON bool

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Grade a list of corroborating article URLs",
	Long: `Score runs only the trust scoring step on a URL list (one per line,
# for comments). The list is read from stdin when no file is given.
Duplicates are kept and counted. No network calls are made.

Example:
  newstrust score urls.txt
  cat urls.txt | newstrust score --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the score report as JSON")
	scoreCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the score cache")
	scoreCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	urls, err := worker.ReadLines(in, false)
	if err != nil {
		return err
	}

	scorer, err := pipeline.NewScorer(cfg, newLogger(cfg), noCache)
	if err != nil {
		return err
	}
	report, _ := scorer.ScoreWithHit(urls)

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return present.RenderTerminal(out, present.BuildView(&model.AnalysisReport{Score: report}), cfg.Output.Color)
}
