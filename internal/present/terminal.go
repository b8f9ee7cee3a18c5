package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("78")
	colorWarning = lipgloss.Color("214")
	colorInfo    = lipgloss.Color("39")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("241")
)

var badgeBase = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("0")).
	Padding(0, 1)

var sectionTitle = lipgloss.NewStyle().
	Bold(true).
	MarginTop(1)

var mutedText = lipgloss.NewStyle().
	Foreground(colorMuted)

var metricStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

func badgeColor(b BadgeStyle) lipgloss.Color {
	switch b {
	case BadgeSuccess:
		return colorSuccess
	case BadgeWarning:
		return colorWarning
	case BadgeInfo:
		return colorInfo
	default:
		return colorError
	}
}

// RenderTerminal writes the view for a terminal. With color off the output
// is plain text.
func RenderTerminal(w io.Writer, v View, color bool) error {
	var b strings.Builder

	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	badge := paint(badgeBase.Background(badgeColor(v.Badge)), v.GradeLabel)
	if !color {
		badge = "[" + v.GradeLabel + "]"
	}
	fmt.Fprintf(&b, "%s  %s\n\n", badge, v.Headline)
	fmt.Fprintf(&b, "%s\n", v.Summary)

	if len(v.Metrics) > 0 {
		if color {
			boxes := make([]string, 0, len(v.Metrics))
			for _, m := range v.Metrics {
				boxes = append(boxes, metricStyle.Render(m.Label+"\n"+lipgloss.NewStyle().Bold(true).Render(m.Value)))
			}
			fmt.Fprintf(&b, "\n%s\n", lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		} else {
			b.WriteString("\n")
			for _, m := range v.Metrics {
				fmt.Fprintf(&b, "  %s: %s\n", m.Label, m.Value)
			}
		}
	}

	if len(v.Claims) > 0 {
		fmt.Fprintf(&b, "\n%s\n", paint(sectionTitle, "Claims"))
		for i, c := range v.Claims {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
		}
	}

	writeList(&b, paint, "Trusted sources", v.TrustedURLs)
	writeList(&b, paint, "Other sources", v.OtherURLs)

	if len(v.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", paint(sectionTitle.Foreground(colorWarning), "Warnings"))
		for _, warn := range v.Warnings {
			fmt.Fprintf(&b, "  ! %s\n", warn)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, paint func(lipgloss.Style, string) string, title string, urls []string) {
	fmt.Fprintf(b, "\n%s\n", paint(sectionTitle, title))
	for _, u := range urls {
		if u == NotFound {
			fmt.Fprintf(b, "  %s\n", paint(mutedText, u))
			continue
		}
		fmt.Fprintf(b, "  - %s\n", u)
	}
}
