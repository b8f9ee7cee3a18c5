package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/newstrust/internal/extract"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/util"
)

// NewsItem is one result of a news search query
type NewsItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// NewsSearcher runs a single news search query
type NewsSearcher interface {
	Search(ctx context.Context, query string, display int, sort string) ([]NewsItem, error)
}

type naverResponse struct {
	LastBuildDate string     `json:"lastBuildDate"`
	Total         int        `json:"total"`
	Start         int        `json:"start"`
	Display       int        `json:"display"`
	Items         []NewsItem `json:"items"`
}

type naverError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

// NaverClient queries the Naver news search API
type NaverClient struct {
	endpoint     string
	clientID     string
	clientSecret string
	maxRetries   int
	httpClient   *http.Client
}

// NewNaverClient creates a client. Missing credentials are a configuration
// error so that no query is ever sent without them.
func NewNaverClient(cfg model.SearchConfig, httpCfg model.HTTPConfig) (*NaverClient, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, &model.ConfigError{Field: "NAVER_CLIENT_ID", Message: "search client id is required"}
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, &model.ConfigError{Field: "NAVER_CLIENT_SECRET", Message: "search client secret is required"}
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = model.DefaultConfig().Search.Endpoint
	}

	return &NaverClient{
		endpoint:     endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		maxRetries:   cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: util.NewTransport(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		},
	}, nil
}

// Endpoint returns the search URL. Searcher throttles on its host.
func (c *NaverClient) Endpoint() string {
	return c.endpoint
}

// Search runs one query. Titles and descriptions come back with the
// highlighting markup removed.
func (c *NaverClient) Search(ctx context.Context, query string, display int, sort string) ([]NewsItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("start", "1")
	params.Set("sort", sort)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := util.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &model.ConfigError{Field: "NAVER_CLIENT_ID", Message: "search API rejected the credentials: " + apiErrorMessage(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API error (%d): %s", resp.StatusCode, apiErrorMessage(body))
	}

	var parsed naverResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	for i := range parsed.Items {
		parsed.Items[i].Title = extract.StripMarkup(parsed.Items[i].Title)
		parsed.Items[i].Description = extract.StripMarkup(parsed.Items[i].Description)
	}

	return parsed.Items, nil
}

func apiErrorMessage(body []byte) string {
	var apiErr naverError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorMessage != "" {
		return fmt.Sprintf("%s (%s)", apiErr.ErrorMessage, apiErr.ErrorCode)
	}
	return strings.TrimSpace(string(body))
}
