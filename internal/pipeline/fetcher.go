package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"

	"github.com/ppiankov/newstrust/internal/extract/adapters"
	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/util"
	"github.com/ppiankov/newstrust/internal/worker"
)

const maxFetchAttempts = 3

// fetchSleepFunc is replaced in tests to skip real backoff waits
var fetchSleepFunc = sleepContext

var errTooManyRedirects = errors.New("stopped after 3 redirects")

// statusError is returned by Fetch for a non-2xx response
type statusError struct {
	Code   int
	Status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetcher fetches article pages and extracts their body text
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	registry   *adapters.Registry
	logger     *log.Logger
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := util.NewTransport(httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via http.insecure_tls
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return errTooManyRedirects
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		registry:  adapters.NewRegistry(model.DefaultConfig().Extract),
		logger:    logging.OrDefault(nil),
	}
}

// NewFetcherFromConfig creates a Fetcher from the application config.
// robots.txt is consulted only when http.respect_robots is set.
func NewFetcherFromConfig(cfg *model.Config, limiter *worker.Limiter, logger *log.Logger) *Fetcher {
	f := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	f.registry = adapters.NewRegistry(cfg.Extract)
	f.limiter = limiter
	f.logger = logging.OrDefault(logger)
	if cfg.HTTP.RespectRobots {
		f.robots = util.NewRobotsCheckerWithClient(cfg.HTTP.UserAgent, f.httpClient)
	}
	return f
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Fetch retrieves HTML content from the given URL in a single attempt
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{Code: resp.StatusCode, Status: resp.Status}
	}

	// Decode to UTF-8 using the declared charset, or <meta> sniffing when
	// the header has none
	contentType := resp.Header.Get("Content-Type")
	decoded, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// FetchWithRetry fetches rawURL, retrying transient failures with
// exponential backoff (1s, 2s). robots.txt and rate limits are checked once
// before the first attempt.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	if err := f.admit(ctx, rawURL); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			if err := fetchSleepFunc(ctx, time.Duration(1<<(attempt-1))*time.Second); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxFetchAttempts, lastErr)
}

// FetchText fetches an article and returns its extracted body text
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	result, err := f.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	body, adapter, err := f.registry.Extract(result.HTML, result.FinalURL)
	if err != nil {
		return "", fmt.Errorf("extract body: %w", err)
	}
	f.logger.Debug("extracted article body", "url", result.FinalURL, "adapter", adapter, "chars", len([]rune(body)))
	return body, nil
}

// admit applies robots.txt rules and the per-host rate limit
func (f *Fetcher) admit(ctx context.Context, rawURL string) error {
	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return fmt.Errorf("%s: %w", rawURL, util.ErrDisallowed)
		}
		crawlDelay = delay
	}

	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	return nil
}

// isRetryableFetchError reports whether a Fetch error is worth another attempt:
// network errors, 429 and 5xx responses.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}

	if errors.Is(err, errTooManyRedirects) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
