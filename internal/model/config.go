package model

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all newstrust settings. Credentials are never written out by
// "config show" or "config init" (yaml:"-") but can still be loaded by viper.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Search       SearchConfig      `yaml:"search" mapstructure:"search"`
	Scoring      ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Extract      ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Logging      LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// LLMConfig controls claim extraction
type LLMConfig struct {
	Provider      string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model         string  `yaml:"model" mapstructure:"model"`
	APIKey        string  `yaml:"-" mapstructure:"api_key"`
	BaseURL       string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout       int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens     int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature   float32 `yaml:"temperature" mapstructure:"temperature"`
	MaxInputChars int     `yaml:"max_input_chars" mapstructure:"max_input_chars"`
}

// SearchConfig controls the corroboration search API
type SearchConfig struct {
	Endpoint       string   `yaml:"endpoint" mapstructure:"endpoint"`
	ClientID       string   `yaml:"-" mapstructure:"client_id"`
	ClientSecret   string   `yaml:"-" mapstructure:"client_secret"`
	Display        int      `yaml:"display" mapstructure:"display"` // Results requested per claim
	Sort           string   `yaml:"sort" mapstructure:"sort"`       // "sim" or "date"
	CanonicalHosts []string `yaml:"canonical_hosts" mapstructure:"canonical_hosts"`
	MaxRetries     int      `yaml:"max_retries" mapstructure:"max_retries"`
}

// ScoringConfig controls source classification
type ScoringConfig struct {
	TrustedDomains []string `yaml:"trusted_domains" mapstructure:"trusted_domains"`
}

// CacheConfig controls the advisory score cache
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend       string        `yaml:"backend" mapstructure:"backend"` // memory, disk, layered, redis
	TTL           time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir           string        `yaml:"dir" mapstructure:"dir"`
	RedisAddr     string        `yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisPassword string        `yaml:"-" mapstructure:"redis_password"`
	RedisDB       int           `yaml:"redis_db" mapstructure:"redis_db"`
}

// ConcurrencyConfig controls parallelism
type ConcurrencyConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers"`               // Articles processed in parallel by batch
	SearchWorkers int `yaml:"search_workers" mapstructure:"search_workers"` // Claim queries in flight per article
}

// RateLimitConfig throttles outbound requests per host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ExtractConfig controls article body extraction
type ExtractConfig struct {
	BodySelectors       []string `yaml:"body_selectors" mapstructure:"body_selectors"`
	VisibleTextFallback bool     `yaml:"visible_text_fallback" mapstructure:"visible_text_fallback"`
	FailureKeywords     []string `yaml:"failure_keywords" mapstructure:"failure_keywords"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Color   bool `yaml:"color" mapstructure:"color"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json, logfmt
}

// DefaultTrustedDomains returns the built-in list of credible Korean news outlets
func DefaultTrustedDomains() []string {
	return []string{
		// Major dailies
		"chosun.com", "joongang.co.kr", "donga.com",
		"hani.co.kr", "khan.co.kr", "kyunghyang.com",
		"seoul.co.kr", "hankookilbo.com", "munhwa.com",
		// Wire services
		"yna.co.kr", "newsis.com", "news1.kr",
		// Broadcasters
		"sbs.co.kr", "kbs.co.kr", "mbc.co.kr", "ytn.co.kr",
		// IT press
		"zdnet.co.kr", "etnews.com", "it.chosun.com",
		// Business press
		"hankyung.com", "mk.co.kr",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
			MaxBodyBytes: 5_000_000,
			MaxRetries:   3,
		},
		LLM: LLMConfig{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			Timeout:       60,
			MaxTokens:     800,
			Temperature:   0.2,
			MaxInputChars: 12000,
		},
		Search: SearchConfig{
			Endpoint:       "https://openapi.naver.com/v1/search/news.json",
			Display:        5,
			Sort:           "sim",
			CanonicalHosts: []string{"news.naver.com"},
			MaxRetries:     3,
		},
		Scoring: ScoringConfig{
			TrustedDomains: DefaultTrustedDomains(),
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     time.Hour,
			Dir:     defaultCacheDir(),
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			SearchWorkers: 3,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 8,
			BurstSize:         4,
		},
		Extract: ExtractConfig{
			BodySelectors:   []string{"div.article-body", "#dic_area", "#articleBodyContents", "article"},
			FailureKeywords: []string{"오류"},
		},
		Output: OutputConfig{
			Color: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultCacheDir() string {
	return ".newstrust-cache"
}

var validCacheBackends = map[string]bool{
	"memory": true, "disk": true, "layered": true, "redis": true,
}

// Validate checks structural settings that every command relies on
func (c *Config) Validate() error {
	if c.Search.Display < 1 || c.Search.Display > 100 {
		return &ConfigError{Field: "search.display", Message: fmt.Sprintf("must be between 1 and 100, got %d", c.Search.Display)}
	}
	if len(c.Search.CanonicalHosts) == 0 {
		return &ConfigError{Field: "search.canonical_hosts", Message: "at least one canonical article host is required"}
	}
	for _, d := range c.Scoring.TrustedDomains {
		// An empty entry would be a substring of every domain
		if strings.TrimSpace(d) == "" {
			return &ConfigError{Field: "scoring.trusted_domains", Message: "entries must not be empty"}
		}
	}
	if c.Cache.Enabled {
		if !validCacheBackends[c.Cache.Backend] {
			return &ConfigError{Field: "cache.backend", Message: fmt.Sprintf("unknown backend %q (supported: memory, disk, layered, redis)", c.Cache.Backend)}
		}
		if c.Cache.TTL < 0 {
			return &ConfigError{Field: "cache.ttl", Message: "must not be negative"}
		}
		if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
			return &ConfigError{Field: "cache.redis_addr", Message: "required for the redis backend"}
		}
	}
	return nil
}

// ValidateCredentials checks the secrets needed by claim extraction and
// corroboration search. It runs once, before any pipeline stage starts.
func (c *Config) ValidateCredentials() error {
	if strings.TrimSpace(c.Search.ClientID) == "" {
		return &ConfigError{Field: "NAVER_CLIENT_ID", Message: "search client id is required"}
	}
	if strings.TrimSpace(c.Search.ClientSecret) == "" {
		return &ConfigError{Field: "NAVER_CLIENT_SECRET", Message: "search client secret is required"}
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "openai":
		if c.LLM.APIKey == "" {
			return &ConfigError{Field: "OPENAI_API_KEY", Message: "OpenAI API key is required"}
		}
	case "anthropic", "claude":
		if c.LLM.APIKey == "" {
			return &ConfigError{Field: "ANTHROPIC_API_KEY", Message: "Anthropic API key is required"}
		}
	case "ollama":
		if c.LLM.Model == "" {
			return &ConfigError{Field: "llm.model", Message: "ollama model must be specified"}
		}
	case "":
		return &ConfigError{Field: "llm.provider", Message: "a claim extraction provider is required"}
	default:
		return &ConfigError{Field: "llm.provider", Message: fmt.Sprintf("unknown provider %q (supported: openai, anthropic, ollama)", c.LLM.Provider)}
	}
	return nil
}
