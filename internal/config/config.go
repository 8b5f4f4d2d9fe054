// Package config handles configuration loading for Finance Lab.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	LLM       LLMConfig       `mapstructure:"llm"       yaml:"llm"`
	Providers ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LLMConfig holds the chat tutor provider configuration. The Groq API
// key is the only credential the application needs.
type LLMConfig struct {
	GroqKey     string  `mapstructure:"groq_key"    yaml:"groq_key"`
	BaseURL     string  `mapstructure:"base_url"    yaml:"base_url"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// ProvidersConfig holds the upstream data feed endpoints. Every URL is
// overridable so tests can point providers at local stubs.
type ProvidersConfig struct {
	WorldBankBaseURL string   `mapstructure:"worldbank_base_url" yaml:"worldbank_base_url"`
	StooqURL         string   `mapstructure:"stooq_url"          yaml:"stooq_url"`
	CoinGeckoURL     string   `mapstructure:"coingecko_url"      yaml:"coingecko_url"`
	BankRateURL      string   `mapstructure:"bank_rate_url"      yaml:"bank_rate_url"`
	NewsFeeds        []string `mapstructure:"news_feeds"         yaml:"news_feeds"`
}

// FallbackTile is the demo value served for one dashboard tile when
// its upstream call fails or returns no data.
type FallbackTile struct {
	Label     string `mapstructure:"label"     yaml:"label"`
	Value     string `mapstructure:"value"     yaml:"value"`
	Change    string `mapstructure:"change"    yaml:"change"`
	Direction string `mapstructure:"direction" yaml:"direction"`
}

// DashboardConfig holds the mini-dashboard fallback values and the
// hardcoded policy rate. These are explicit configuration rather than
// package-level state so tests and deployments can swap them.
type DashboardConfig struct {
	Inflation    FallbackTile `mapstructure:"inflation"    yaml:"inflation"`
	GDP          FallbackTile `mapstructure:"gdp"          yaml:"gdp"`
	Unemployment FallbackTile `mapstructure:"unemployment" yaml:"unemployment"`
	BankRate     FallbackTile `mapstructure:"bank_rate"    yaml:"bank_rate"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.financelab/config.yaml (home directory)
//  3. /etc/financelab/config.yaml (system)
//
// Environment variables override config file values.
// Format: FINLAB_<SECTION>_<KEY>, e.g., FINLAB_LLM_GROQ_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".financelab"))
	v.AddConfigPath("/etc/financelab")

	v.SetEnvPrefix("FINLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.temperature", 0.4)

	v.SetDefault("providers.worldbank_base_url", "https://api.worldbank.org/v2")
	v.SetDefault("providers.stooq_url", "https://stooq.com/q/d/l/?s=spy.us&i=d")
	v.SetDefault("providers.coingecko_url",
		"https://api.coingecko.com/api/v3/coins/bitcoin/market_chart?vs_currency=usd&days=365&interval=daily")
	v.SetDefault("providers.bank_rate_url",
		"https://www.bankofengland.co.uk/boeapps/database/Bank-Rate.asp")
	v.SetDefault("providers.news_feeds", []string{
		"https://www.bankofengland.co.uk/rss/news",
		"https://feeds.bbci.co.uk/news/business/economy/rss.xml",
	})

	v.SetDefault("dashboard.inflation.label", "UK inflation (latest)")
	v.SetDefault("dashboard.inflation.value", "3.3%")
	v.SetDefault("dashboard.inflation.change", "-0.5 pts vs prev")
	v.SetDefault("dashboard.inflation.direction", "down")

	v.SetDefault("dashboard.gdp.label", "GDP growth (latest)")
	v.SetDefault("dashboard.gdp.value", "1.1%")
	v.SetDefault("dashboard.gdp.change", "+0.1 pts vs prev")
	v.SetDefault("dashboard.gdp.direction", "up")

	v.SetDefault("dashboard.unemployment.label", "Unemployment (latest)")
	v.SetDefault("dashboard.unemployment.value", "4.1%")
	v.SetDefault("dashboard.unemployment.change", "+0.1 pts vs prev")
	v.SetDefault("dashboard.unemployment.direction", "up")

	v.SetDefault("dashboard.bank_rate.label", "Bank Rate (Bank of England)")
	v.SetDefault("dashboard.bank_rate.value", "5.25%")
	v.SetDefault("dashboard.bank_rate.change", "steady")
	v.SetDefault("dashboard.bank_rate.direction", "flat")
}

// overrideFromEnv picks up the credential from well-known environment
// variables even without the FINLAB_ prefix. GROQ_API_KEY is the name
// Groq's own docs use.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.LLM.GroqKey = key
	}
	if key := os.Getenv("FINLAB_LLM_GROQ_KEY"); key != "" {
		cfg.LLM.GroqKey = key
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
