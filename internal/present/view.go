package present

import (
	"fmt"

	"github.com/ppiankov/newstrust/internal/model"
)

// BadgeStyle is the visual severity of a grade badge
type BadgeStyle string

const (
	BadgeSuccess BadgeStyle = "success"
	BadgeWarning BadgeStyle = "warning"
	BadgeInfo    BadgeStyle = "info"
	BadgeError   BadgeStyle = "error"
)

// NotFound is shown in place of an empty URL list
const NotFound = "not found"

// Metric is one labelled number in the report header
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is the presentation model of an analysis report
type View struct {
	Grade       model.Grade `json:"grade"`
	Badge       BadgeStyle  `json:"badge"`
	GradeLabel  string      `json:"grade_label"`
	Headline    string      `json:"headline"`
	Summary     string      `json:"summary"`
	Metrics     []Metric    `json:"metrics"`
	TrustedURLs []string    `json:"trusted_urls"`
	OtherURLs   []string    `json:"other_urls"`
	Claims      []string    `json:"claims,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
	Failure     string      `json:"failure,omitempty"`
}

// BadgeFor maps a grade to its badge style
func BadgeFor(grade model.Grade) BadgeStyle {
	switch grade {
	case model.GradeA:
		return BadgeSuccess
	case model.GradeB:
		return BadgeWarning
	case model.GradeNA:
		return BadgeInfo
	default:
		return BadgeError
	}
}

func headline(grade model.Grade) string {
	switch grade {
	case model.GradeA:
		return "Analysis complete: high trust"
	case model.GradeB:
		return "Analysis complete: needs caution"
	default:
		return "Analysis complete: low trust"
	}
}

// BuildView derives the view from a report. Metrics are present only when
// there is data to show; empty URL lists become a single placeholder entry.
func BuildView(report *model.AnalysisReport) View {
	s := report.Score

	label := fmt.Sprintf("Trust grade: %s", s.Grade)
	if s.Grade == model.GradeNA {
		label += " (analysis unavailable)"
	}

	v := View{
		Grade:       s.Grade,
		Badge:       BadgeFor(s.Grade),
		GradeLabel:  label,
		Headline:    headline(s.Grade),
		Summary:     s.Summary,
		Metrics:     []Metric{},
		TrustedURLs: orPlaceholder(s.TrustedURLs),
		OtherURLs:   orPlaceholder(s.OtherURLs),
		Claims:      report.Claims,
	}

	if s.Grade != model.GradeNA && s.TotalArticles > 0 {
		v.Metrics = []Metric{
			{Label: "Similar articles", Value: fmt.Sprintf("%d", s.TotalArticles)},
			{Label: "Trusted sources", Value: fmt.Sprintf("%d", s.TrustedCount)},
			{Label: "Source diversity", Value: fmt.Sprintf("%d", s.UniqueDomainCount)},
		}
	}

	for _, w := range report.Warnings {
		v.Warnings = append(v.Warnings, fmt.Sprintf("search failed for %q", w.Claim))
	}
	if report.Failure != nil {
		v.Failure = string(report.Failure.Kind)
	}

	return v
}

func orPlaceholder(urls []string) []string {
	if len(urls) == 0 {
		return []string{NotFound}
	}
	return append([]string(nil), urls...)
}
