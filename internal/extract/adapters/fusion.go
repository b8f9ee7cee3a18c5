package adapters

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/newstrust/internal/extract"
)

const fusionMarker = "Fusion.globalContent"

// FusionAdapter reads article text from the JSON state that Arc XP
// (Fusion) sites embed in a script tag.
type FusionAdapter struct{}

// NewFusionAdapter creates a new Fusion adapter
func NewFusionAdapter() *FusionAdapter {
	return &FusionAdapter{}
}

// Name returns the adapter name
func (a *FusionAdapter) Name() string {
	return "fusion"
}

// CanHandle returns true; detection happens on the page content
func (a *FusionAdapter) CanHandle(pageURL string) bool {
	return true
}

type fusionContent struct {
	ContentElements []struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"content_elements"`
}

// ExtractBody joins every text content element with blank lines
func (a *FusionAdapter) ExtractBody(doc *goquery.Document, pageURL string) (string, error) {
	var body string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		script := s.Text()
		for {
			idx := strings.Index(script, fusionMarker)
			if idx < 0 {
				return true
			}
			script = script[idx+len(fusionMarker):]
			if text := parseFusionScript(script); text != "" {
				body = text
				return false
			}
		}
	})
	return body, nil
}

// parseFusionScript decodes the object literal following "Fusion.globalContent".
// Malformed JSON yields "" so later adapters can try.
func parseFusionScript(rest string) string {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "=") {
		return ""
	}
	rest = strings.TrimSpace(rest[1:])

	var content fusionContent
	dec := json.NewDecoder(strings.NewReader(rest))
	if err := dec.Decode(&content); err != nil {
		return ""
	}

	var paragraphs []string
	for _, el := range content.ContentElements {
		if el.Type != "text" {
			continue
		}
		if text := extract.StripMarkup(el.Content); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
