package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GenericAdapter is the fallback adapter for unknown sites. It tries the
// configured body selectors and, when enabled, the page's visible text.
type GenericAdapter struct {
	selectors   []string
	visibleText bool
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter(selectors []string, visibleTextFallback bool) *GenericAdapter {
	return &GenericAdapter{
		selectors:   append([]string(nil), selectors...),
		visibleText: visibleTextFallback,
	}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(pageURL string) bool {
	return true
}

// ExtractBody returns the text of the first selector that matches
func (a *GenericAdapter) ExtractBody(doc *goquery.Document, pageURL string) (string, error) {
	for _, selector := range a.selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(selectionText(sel)); text != "" {
			return text, nil
		}
	}

	if !a.visibleText {
		return "", nil
	}
	return selectionText(doc.Find("body").First()), nil
}
