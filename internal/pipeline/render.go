package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/newstrust/internal/model"
)

// Renderer writes analysis reports to files
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	return writeFile(path, []byte(Markdown(report)))
}

// Markdown formats a report as a Markdown document
func Markdown(report *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString("# News trust report\n\n")
	if report.SourceURL != "" {
		fmt.Fprintf(&b, "- **Article:** %s\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "- **Run:** `%s`\n", report.ID)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## Grade: %s\n\n", report.Score.Grade)
	fmt.Fprintf(&b, "%s\n\n", report.Score.Summary)

	if report.Failure != nil {
		fmt.Fprintf(&b, "> Analysis stopped at **%s** (%s)\n\n", report.Failure.Stage, report.Failure.Kind)
	}

	if report.Score.Grade != model.GradeNA && report.Score.TotalArticles > 0 {
		b.WriteString("| Similar articles | Trusted sources | Source diversity |\n")
		b.WriteString("|---|---|---|\n")
		fmt.Fprintf(&b, "| %d | %d | %d |\n\n", report.Score.TotalArticles, report.Score.TrustedCount, report.Score.UniqueDomainCount)
	}

	if len(report.Claims) > 0 {
		b.WriteString("## Claims\n\n")
		for i, c := range report.Claims {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c)
		}
		b.WriteString("\n")
	}

	if len(report.Index) > 0 {
		b.WriteString("## Corroboration\n\n")
		for _, entry := range report.Index {
			fmt.Fprintf(&b, "### %s\n\n", entry.Claim)
			for _, u := range entry.URLs {
				fmt.Fprintf(&b, "- %s\n", u)
			}
			b.WriteString("\n")
		}
	}

	writeURLList(&b, "Trusted sources", report.Score.TrustedURLs)
	writeURLList(&b, "Other sources", report.Score.OtherURLs)

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- search failed for %q: %s\n", w.Claim, w.Error)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeURLList(b *strings.Builder, title string, urls []string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(urls) == 0 {
		b.WriteString("_not found_\n\n")
		return
	}
	for _, u := range urls {
		fmt.Fprintf(b, "- %s\n", u)
	}
	b.WriteString("\n")
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
