package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/newstrust/internal/model"
)

// mockAnalyzer implements Analyzer
type mockAnalyzer struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]bool
}

func (m *mockAnalyzer) Analyze(ctx context.Context, url string) *model.AnalysisReport {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	// Later URLs finish first so ordering is exercised
	time.Sleep(time.Duration(10-len(url)%10) * time.Millisecond)

	report := &model.AnalysisReport{
		SourceURL: url,
		Score:     model.ScoreReport{Grade: model.GradeA},
	}
	if m.failFor[url] {
		report.Score = model.ScoreReport{Grade: model.GradeNA}
		report.Failure = &model.Failure{Kind: model.FailureFetch, Stage: model.StageFetch, Message: "boom"}
	}
	return report
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	analyzer := &mockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 3)

	urls := []string{
		"https://a.example/1",
		"https://b.example/22",
		"https://c.example/333",
		"https://d.example/4444",
		"https://e.example/55555",
	}

	results := processor.ProcessURLs(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}
	for i, res := range results {
		if res.URL != urls[i] {
			t.Errorf("result %d: expected %s, got %s", i, urls[i], res.URL)
		}
		if res.Index != i {
			t.Errorf("result %d: expected index %d, got %d", i, i, res.Index)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
		}
		if res.Report == nil || res.Report.SourceURL != urls[i] {
			t.Errorf("result %d: report does not match URL", i)
		}
	}
}

func TestBatchProcessor_DegradedReport(t *testing.T) {
	analyzer := &mockAnalyzer{failFor: map[string]bool{"https://bad.example": true}}
	processor := NewBatchProcessor(analyzer, 2)

	results := processor.ProcessURLs(context.Background(), []string{"https://ok.example", "https://bad.example"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("unexpected error: %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("expected error for degraded report")
	}
	if results[1].Report == nil || results[1].Report.Failure.Kind != model.FailureFetch {
		t.Error("expected degraded report to be kept")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2)
	results := processor.ProcessURLs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# articles\nhttps://a.example/1\n\nhttps://b.example/2\nhttps://a.example/1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	analyzer := &mockAnalyzer{}
	results, err := NewBatchProcessor(analyzer, 2).ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 deduplicated results, got %d", len(results))
	}

	if _, err := NewBatchProcessor(analyzer, 2).ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadLines(t *testing.T) {
	input := "https://x/1\n  https://x/2  \n# comment\n\nhttps://x/1\n"

	tests := []struct {
		name   string
		dedupe bool
		want   []string
	}{
		{"dedupe", true, []string{"https://x/1", "https://x/2"}},
		{"keep duplicates", false, []string{"https://x/1", "https://x/2", "https://x/1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(input), tt.dedupe)
			if err != nil {
				t.Fatalf("ReadLines failed: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ctxAnalyzer records the context each analysis ran under
type ctxAnalyzer struct {
	mu   sync.Mutex
	ctxs []context.Context
}

func (a *ctxAnalyzer) Analyze(ctx context.Context, url string) *model.AnalysisReport {
	a.mu.Lock()
	a.ctxs = append(a.ctxs, ctx)
	a.mu.Unlock()
	return &model.AnalysisReport{SourceURL: url, Score: model.ScoreReport{Grade: model.GradeA}}
}

func TestBatchProcessor_ReleasesPoolContext(t *testing.T) {
	analyzer := &ctxAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2)

	results := processor.ProcessURLs(context.Background(), []string{"https://a.example/1", "https://b.example/2"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	if len(analyzer.ctxs) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(analyzer.ctxs))
	}
	for i, ctx := range analyzer.ctxs {
		if ctx.Err() == nil {
			t.Errorf("analysis %d: pool context still live after ProcessURLs returned", i)
		}
	}
}
