package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/newstrust/internal/extract"
)

// NaverAdapter extracts the body of Naver News article pages
type NaverAdapter struct {
	selectors []string
	noise     string
}

// NewNaverAdapter creates a new Naver News adapter
func NewNaverAdapter() *NaverAdapter {
	return &NaverAdapter{
		selectors: []string{"#dic_area", "#newsct_article", "#articleBodyContents"},
		noise:     "script, style, .end_photo_org, .img_desc, .media_end_summary, .byline, .vod_player_wrap",
	}
}

// Name returns the adapter name
func (a *NaverAdapter) Name() string {
	return "naver"
}

// CanHandle checks if this is a Naver News URL
func (a *NaverAdapter) CanHandle(pageURL string) bool {
	host := hostOf(pageURL)
	return host == "news.naver.com" || strings.HasSuffix(host, ".news.naver.com")
}

// ExtractBody returns the text of the first matching body container,
// with photo captions and summaries removed
func (a *NaverAdapter) ExtractBody(doc *goquery.Document, pageURL string) (string, error) {
	for _, selector := range a.selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		sel = sel.Clone()
		sel.Find(a.noise).Remove()
		// Naver bodies are flat text separated by <br>
		sel.Find("br").ReplaceWithHtml("\n")
		if text := extract.NormalizeText(sel.Text()); text != "" {
			return text, nil
		}
	}
	return "", nil
}
