package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is loaded once at
// startup and passed down explicitly; nothing reads the process environment
// after Load returns.
type Config struct {
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ProvidersConfig names the primary and fallback model providers. The two
// are interchangeable: swapping them changes nothing about the prompt or
// normalization contract.
type ProvidersConfig struct {
	Primary  ProviderConfig `yaml:"primary" mapstructure:"primary"`
	Fallback ProviderConfig `yaml:"fallback" mapstructure:"fallback"`
}

// ProviderConfig selects one generative-model endpoint.
type ProviderConfig struct {
	// Provider is one of "groq", "openrouter" (OpenAI-compatible endpoints)
	// or "anthropic".
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// AnalysisConfig tunes the analysis pipeline.
type AnalysisConfig struct {
	MaxTokens          int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature        float64 `yaml:"temperature" mapstructure:"temperature"`
	AttemptTimeoutSecs int     `yaml:"attempt_timeout_secs" mapstructure:"attempt_timeout_secs"`
	// ProviderRetries is the number of transport attempts per provider tier.
	// The default of 1 keeps the single-attempt-then-failover contract.
	ProviderRetries int `yaml:"provider_retries" mapstructure:"provider_retries"`
}

// StoreConfig configures the decision store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DECISION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("providers.primary.provider", "groq")
	v.SetDefault("providers.primary.model", "llama-3.3-70b-versatile")
	v.SetDefault("providers.primary.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("providers.fallback.provider", "openrouter")
	v.SetDefault("providers.fallback.model", "mistralai/mistral-7b-instruct:free")
	v.SetDefault("providers.fallback.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("analysis.max_tokens", 2000)
	v.SetDefault("analysis.temperature", 0.3)
	v.SetDefault("analysis.attempt_timeout_secs", 60)
	v.SetDefault("analysis.provider_retries", 1)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "decisions.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
