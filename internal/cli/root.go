package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
)

// version is set at build time with -ldflags "-X .../cli.version=..."
var version = "v0.1.0"

var (
	cfgFile   string
	envFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "newstrust",
	Short: "newstrust - trust grades for news articles by cross-outlet corroboration",
	Long: `newstrust estimates how trustworthy a news article is.

It extracts the article's key claims with a language model, searches the
Naver news index for other articles reporting the same claims, and grades
the result by how many outlets (and how many credible ones) corroborate it.

newstrust does not verify that the articles found actually support a claim.
A grade is a hint for the reader, not a verdict.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx; cancelling ctx aborts
// in-flight analyses
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newstrust %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.newstrust/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with credentials (ignored when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json, logfmt")

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in the dotenv file, config file and ENV variables
func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", envFile, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".newstrust"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// NEWSTRUST_SEARCH_DISPLAY overrides search.display, and so on
	viper.SetEnvPrefix("NEWSTRUST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnvKeys(reflect.TypeOf(model.Config{}), "")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindEnvKeys registers every config key with viper so that environment
// variables are honored by Unmarshal even when the key is absent from the file
func bindEnvKeys(t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if field.Type.Kind() == reflect.Struct {
			bindEnvKeys(field.Type, key)
			continue
		}
		_ = viper.BindEnv(key)
	}
}

// loadConfig overlays config file and environment onto the defaults and
// picks up credentials from their conventional environment variables
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyCredentialEnv(cfg)
	if verbose {
		cfg.Output.Verbose = true
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}

func applyCredentialEnv(cfg *model.Config) {
	if v := os.Getenv("NAVER_CLIENT_ID"); v != "" {
		cfg.Search.ClientID = v
	}
	if v := os.Getenv("NAVER_CLIENT_SECRET"); v != "" {
		cfg.Search.ClientSecret = v
	}

	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	case "anthropic", "claude":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	case "ollama":
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			cfg.LLM.BaseURL = v
		}
	}
}

// newLogger builds the process logger on stderr
func newLogger(cfg *model.Config) *log.Logger {
	level := cfg.Logging.Level
	if cfg.Output.Verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level, cfg.Logging.Format)
}
