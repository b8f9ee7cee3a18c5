package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/newstrust/internal/model"
)

// Analyzer runs the full trust pipeline for one article URL
type Analyzer interface {
	Analyze(ctx context.Context, url string) *model.AnalysisReport
}

// AnalyzeJob represents one article analysis
type AnalyzeJob struct {
	Index    int
	URL      string
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report := j.Analyzer.Analyze(ctx, j.URL)

	var err error
	if report == nil {
		err = fmt.Errorf("%s: no report", j.URL)
	} else if report.Failure != nil {
		err = fmt.Errorf("%s: %s", report.Failure.Kind, report.Failure.Message)
	}

	return &AnalyzeResult{
		Index:  j.Index,
		URL:    j.URL,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one analysis job. Error is set for degraded
// reports; Report is still populated in that case.
type AnalyzeResult struct {
	Index  int
	URL    string
	Report *model.AnalysisReport
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple URLs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessURLs analyzes urls concurrently and returns results in input order
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	jobs := make([]Job, len(urls))
	for i, u := range urls {
		jobs[i] = &AnalyzeJob{Index: i, URL: u, Analyzer: b.analyzer}
	}

	pool := NewPool(ctx, b.concurrency)
	defer pool.Shutdown()
	pool.Start()
	results := pool.Run(jobs)

	out := make([]*AnalyzeResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*AnalyzeResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads URLs from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads article URLs from a file (one per line, deduplicated)
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadLines(file, true)
}

// ReadLines reads non-empty, non-comment lines from r. With dedupe set,
// repeated lines are dropped; otherwise order and duplicates are preserved.
func ReadLines(r io.Reader, dedupe bool) ([]string, error) {
	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if dedupe {
			if seen[line] {
				continue
			}
			seen[line] = true
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return lines, nil
}
