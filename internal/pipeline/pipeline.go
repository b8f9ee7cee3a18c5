package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ppiankov/newstrust/internal/cache"
	"github.com/ppiankov/newstrust/internal/extract"
	"github.com/ppiankov/newstrust/internal/llm"
	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/score"
	"github.com/ppiankov/newstrust/internal/search"
	"github.com/ppiankov/newstrust/internal/worker"
)

// TextSource acquires the body text of an article
type TextSource interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ClaimSource extracts claims from article text
type ClaimSource interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Corroborator builds the corroboration index for a claim list
type Corroborator interface {
	Corroborate(ctx context.Context, claims []string) (*model.CorroborationIndex, []model.ClaimFailure, error)
}

// TrustScorer grades a flat URL list
type TrustScorer interface {
	ScoreWithHit(urls []string) (model.ScoreReport, bool)
}

// Components are the stage implementations an Analyzer runs
type Components struct {
	Source          TextSource
	Claims          ClaimSource
	Search          Corroborator
	Scorer          TrustScorer
	FailureKeywords []string
	Logger          *log.Logger
	Progress        func(model.Stage) // Optional; called when a stage starts
}

// Analyzer runs the four stages for one article. It holds no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	source   TextSource
	claims   ClaimSource
	search   Corroborator
	scorer   TrustScorer
	detector *extract.FailureDetector
	logger   *log.Logger
	progress func(model.Stage)
	now      func() time.Time
}

// NewAnalyzer creates an analyzer from explicit components
func NewAnalyzer(c Components) *Analyzer {
	scorer := c.Scorer
	if scorer == nil {
		scorer = score.NewCachedScorer(nil, nil, 0, c.Logger)
	}
	return &Analyzer{
		source:   c.Source,
		claims:   c.Claims,
		search:   c.Search,
		scorer:   scorer,
		detector: extract.NewFailureDetector(c.FailureKeywords),
		logger:   logging.OrDefault(c.Logger),
		progress: c.Progress,
		now:      time.Now,
	}
}

// Options adjust how New wires the analyzer
type Options struct {
	NoCache  bool
	Progress func(model.Stage)
}

// New wires the production analyzer from cfg. Configuration and
// credentials are validated here, once, before any stage can run.
func New(cfg *model.Config, logger *log.Logger, opts Options) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	logger = logging.OrDefault(logger)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		return nil, &model.ConfigError{Field: "llm.provider", Message: err.Error()}
	}

	naver, err := search.NewNaverClient(cfg.Search, cfg.HTTP)
	if err != nil {
		return nil, err
	}

	scorer, err := NewScorer(cfg, logger, opts.NoCache)
	if err != nil {
		return nil, err
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	return NewAnalyzer(Components{
		Source:          NewFetcherFromConfig(cfg, limiter, logger),
		Claims:          llm.NewClaimExtractor(provider, cfg.LLM.MaxInputChars),
		Search:          search.NewSearcher(naver, search.OptionsFromConfig(cfg, limiter, logger)),
		Scorer:          scorer,
		FailureKeywords: cfg.Extract.FailureKeywords,
		Logger:          logger,
		Progress:        opts.Progress,
	}), nil
}

// NewScorer builds the cached scorer from cfg. With the cache disabled
// (or noCache set) every call scores afresh.
func NewScorer(cfg *model.Config, logger *log.Logger, noCache bool) (*score.CachedScorer, error) {
	scorer := score.NewScorer(score.NewTrustedDomainSet(cfg.Scoring.TrustedDomains))
	if noCache || !cfg.Cache.Enabled {
		return score.NewCachedScorer(scorer, nil, 0, logger), nil
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return score.NewCachedScorer(scorer, c, cfg.Cache.TTL, logger), nil
}

// Analyze runs the full pipeline for an article URL. Stage failures never
// surface as errors: the returned report is degraded (grade N/A) and
// carries the failure kind instead.
func (a *Analyzer) Analyze(ctx context.Context, url string) *model.AnalysisReport {
	report := a.newReport(url)
	logger := a.logger.With("run", report.ID)

	a.stage(model.StageFetch)
	text, err := a.source.FetchText(ctx, url)
	if err != nil {
		logger.Warn("article fetch failed", "url", url, "err", err)
		return a.fail(ctx, report, model.FailureFetch, model.StageFetch, err, score.FetchFailedSummary)
	}

	return a.analyze(ctx, report, text)
}

// AnalyzeText runs claim extraction, search and scoring on text that was
// acquired elsewhere
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) *model.AnalysisReport {
	return a.analyze(ctx, a.newReport(""), text)
}

func (a *Analyzer) analyze(ctx context.Context, report *model.AnalysisReport, text string) *model.AnalysisReport {
	logger := a.logger.With("run", report.ID)

	text = strings.TrimSpace(text)
	report.TextLength = len([]rune(text))
	if text == "" {
		return a.fail(ctx, report, model.FailureFetch, model.StageFetch, errors.New("empty article text"), score.FetchFailedSummary)
	}
	if a.detector.IsFailure(text) {
		return a.fail(ctx, report, model.FailureFetchMarker, model.StageFetch, errors.New("article text carries a failure marker"), score.FetchFailedSummary)
	}

	a.stage(model.StageClaims)
	claims, err := a.claims.Extract(ctx, text)
	if err != nil {
		logger.Warn("claim extraction failed", "err", err)
		return a.fail(ctx, report, model.FailureClaimExtraction, model.StageClaims, err, score.NoClaimsSummary)
	}
	if a.detector.IsFailedClaimList(claims) {
		return a.fail(ctx, report, model.FailureNoClaims, model.StageClaims, errors.New("no usable claims"), score.NoClaimsSummary)
	}
	report.Claims = claims
	logger.Debug("claims extracted", "count", len(claims))

	a.stage(model.StageSearch)
	index, warnings, err := a.search.Corroborate(ctx, claims)
	if err != nil {
		kind := model.KindOf(err)
		if kind == "" {
			kind = model.FailureSearch
		}
		summary := score.SearchFailedSummary
		if kind == model.FailureConfig {
			summary = score.SearchConfigSummary
		}
		logger.Warn("corroboration search failed", "err", err)
		return a.fail(ctx, report, kind, model.StageSearch, err, summary)
	}
	report.Index = index.Entries()
	report.Warnings = warnings

	a.stage(model.StageScore)
	report.Score, report.Cached = a.scorer.ScoreWithHit(index.Flatten())

	a.stage(model.StageDone)
	report.FinishedAt = a.now().UTC()
	logger.Info("analysis complete", "grade", report.Score.Grade, "articles", report.Score.TotalArticles, "trusted", report.Score.TrustedCount)
	return report
}

func (a *Analyzer) newReport(url string) *model.AnalysisReport {
	return &model.AnalysisReport{
		ID:        uuid.NewString(),
		SourceURL: url,
		StartedAt: a.now().UTC(),
		Claims:    []string{},
		Index:     []model.CorroborationEntry{},
		Score:     score.Degraded(score.Summary(model.GradeNA, 0, 0)),
	}
}

// fail turns the report into a degraded one. Cancellation by the caller
// takes precedence over the stage's own failure kind.
func (a *Analyzer) fail(ctx context.Context, report *model.AnalysisReport, kind model.FailureKind, stage model.Stage, err error, summary string) *model.AnalysisReport {
	if ctx.Err() != nil {
		kind = model.FailureCancelled
		report.Claims = []string{}
		report.Index = []model.CorroborationEntry{}
		report.Warnings = nil
	}
	stageErr := model.NewStageError(kind, stage, err)

	report.Score = score.Degraded(summary)
	report.Failure = &model.Failure{Kind: kind, Stage: stage, Message: stageErr.Error()}
	report.FinishedAt = a.now().UTC()
	return report
}

func (a *Analyzer) stage(s model.Stage) {
	if a.progress != nil {
		a.progress(s)
	}
}
