package adapters

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/newstrust/internal/extract"
	"github.com/ppiankov/newstrust/internal/model"
)

// ErrNoArticleBody is returned when no adapter finds article text
var ErrNoArticleBody = errors.New("no article body found")

// Adapter extracts the body text of one family of news pages
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL
	CanHandle(pageURL string) bool

	// ExtractBody returns the article text, or "" when the page has none
	// in the form this adapter understands
	ExtractBody(doc *goquery.Document, pageURL string) (string, error)
}

// Registry manages body adapters. Adapters are tried in registration
// order; the generic adapter runs last.
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry(cfg model.ExtractConfig) *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewFusionAdapter())
	registry.Register(NewNaverAdapter())

	registry.generic = NewGenericAdapter(cfg.BodySelectors, cfg.VisibleTextFallback)

	return registry
}

// Register registers a new adapter ahead of the generic fallback
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Extract parses htmlContent and returns the first non-empty body along
// with the name of the adapter that produced it.
func (r *Registry) Extract(htmlContent, pageURL string) (body string, adapter string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	candidates := make([]Adapter, 0, len(r.adapters)+1)
	for _, a := range r.adapters {
		if a.CanHandle(pageURL) {
			candidates = append(candidates, a)
		}
	}
	if r.generic != nil {
		candidates = append(candidates, r.generic)
	}

	var errs []error
	for _, a := range candidates {
		text, err := a.ExtractBody(doc, pageURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, a.Name(), nil
		}
	}

	if len(errs) > 0 {
		return "", "", fmt.Errorf("%w: %w", ErrNoArticleBody, errors.Join(errs...))
	}
	return "", "", ErrNoArticleBody
}

// hostOf returns the lowercased host of pageURL without a leading "www."
func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// selectionText returns the visible text under the first node of sel
func selectionText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return extract.VisibleText(sel.Nodes[0])
}
