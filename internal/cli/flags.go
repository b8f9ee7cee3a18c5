package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newstrust/internal/model"
)

var (
	httpTimeout time.Duration
	userAgent   string
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	noCache     bool
	noColor     bool
	llmProvider string
	llmModel    string
)

// addPipelineFlags registers the flags shared by commands that run the pipeline
func addPipelineFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()
	f := cmd.Flags()

	f.DurationVar(&httpTimeout, "http-timeout", defaults.HTTP.Timeout, "timeout for individual HTTP requests")
	f.StringVar(&userAgent, "ua", defaults.HTTP.UserAgent, "HTTP User-Agent for article fetches")
	f.BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	f.StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	f.StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	f.BoolVar(&noCache, "no-cache", false, "disable the score cache")
	f.BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	f.StringVar(&llmProvider, "llm-provider", defaults.LLM.Provider, "claim extraction provider (openai, anthropic, ollama)")
	f.StringVar(&llmModel, "llm-model", defaults.LLM.Model, "claim extraction model name")
}

// applyPipelineFlags copies explicitly set flags over the loaded config
func applyPipelineFlags(cmd *cobra.Command, cfg *model.Config) {
	f := cmd.Flags()
	changed := func(name string) bool {
		flag := f.Lookup(name)
		return flag != nil && flag.Changed
	}

	if changed("http-timeout") {
		cfg.HTTP.Timeout = httpTimeout
	}
	if changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if changed("no-cache") && noCache {
		cfg.Cache.Enabled = false
	}
	if changed("no-color") && noColor {
		cfg.Output.Color = false
	}
	if changed("llm-provider") && llmProvider != cfg.LLM.Provider {
		cfg.LLM.Provider = llmProvider
		// The key and default model belong to the previous provider
		cfg.LLM.APIKey = ""
		if cfg.LLM.Model == model.DefaultConfig().LLM.Model {
			cfg.LLM.Model = ""
		}
		applyCredentialEnv(cfg)
	}
	if changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
}

// setupPipeline loads the config, applies cmd's flags and builds the logger
func setupPipeline(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	applyPipelineFlags(cmd, cfg)
	return cfg, nil
}
