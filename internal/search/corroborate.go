package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/worker"
)

// Searcher builds a corroboration index by querying the news search once per claim
type Searcher struct {
	client   NewsSearcher
	filter   *HostFilter
	display  int
	sort     string
	workers  int
	limiter  *worker.Limiter
	limitKey string
	logger   *log.Logger
}

// Options configures a Searcher
type Options struct {
	Display        int
	Sort           string
	CanonicalHosts []string
	Workers        int
	Limiter        *worker.Limiter
	LimitKey       string // URL whose host the limiter throttles; defaults to the client's endpoint
	Logger         *log.Logger
}

// OptionsFromConfig derives searcher options from the application config
func OptionsFromConfig(cfg *model.Config, limiter *worker.Limiter, logger *log.Logger) Options {
	return Options{
		Display:        cfg.Search.Display,
		Sort:           cfg.Search.Sort,
		CanonicalHosts: cfg.Search.CanonicalHosts,
		Workers:        cfg.Concurrency.SearchWorkers,
		Limiter:        limiter,
		Logger:         logger,
	}
}

// NewSearcher creates a searcher
func NewSearcher(client NewsSearcher, opts Options) *Searcher {
	defaults := model.DefaultConfig().Search
	if opts.Display <= 0 {
		opts.Display = defaults.Display
	}
	if opts.Sort == "" {
		opts.Sort = defaults.Sort
	}
	if len(opts.CanonicalHosts) == 0 {
		opts.CanonicalHosts = defaults.CanonicalHosts
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.LimitKey == "" {
		opts.LimitKey = defaults.Endpoint
		if e, ok := client.(interface{ Endpoint() string }); ok {
			opts.LimitKey = e.Endpoint()
		}
	}

	return &Searcher{
		client:   client,
		filter:   NewHostFilter(opts.CanonicalHosts),
		display:  opts.Display,
		sort:     opts.Sort,
		workers:  opts.Workers,
		limiter:  opts.Limiter,
		limitKey: opts.LimitKey,
		logger:   logging.OrDefault(opts.Logger),
	}
}

type claimResult struct {
	urls []string
	err  error
}

// Corroborate queries every claim and returns the index in claim order.
// A failed query skips its claim and is reported as a warning. The error is
// non-nil only for configuration problems or cancellation.
func (s *Searcher) Corroborate(ctx context.Context, claims []string) (*model.CorroborationIndex, []model.ClaimFailure, error) {
	results := make([]claimResult, len(claims))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, claim := range claims {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			urls, err := s.searchClaim(gctx, claim)
			var cfgErr *model.ConfigError
			if errors.As(err, &cfgErr) {
				return err
			}
			results[i] = claimResult{urls: urls, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, model.NewStageError(model.FailureConfig, model.StageSearch, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, model.NewStageError(model.FailureCancelled, model.StageSearch, err)
	}

	index := model.NewCorroborationIndex()
	var warnings []model.ClaimFailure
	for i, claim := range claims {
		r := results[i]
		if r.err != nil {
			s.logger.Warn("claim search failed", "claim", claim, "err", r.err)
			warnings = append(warnings, model.ClaimFailure{Claim: claim, Error: r.err.Error()})
			continue
		}
		index.Set(claim, r.urls)
	}

	s.logger.Debug("corroboration complete", "claims", len(claims), "corroborated", index.Len(), "failed", len(warnings))
	return index, warnings, nil
}

func (s *Searcher) searchClaim(ctx context.Context, claim string) ([]string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.limitKey); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	items, err := s.client.Search(ctx, claim, s.display, s.sort)
	if err != nil {
		return nil, err
	}
	return s.filter.Filter(items), nil
}
