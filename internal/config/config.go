package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	AI        AIConfig        `yaml:"ai" mapstructure:"ai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	I18n      I18nConfig      `yaml:"i18n" mapstructure:"i18n"`
	Locate    LocateConfig    `yaml:"locate" mapstructure:"locate"`
	Farmer    FarmerConfig    `yaml:"farmer" mapstructure:"farmer"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the key-value backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// AIConfig configures the completion calls shared by every flow.
type AIConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts       int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	VerifyCacheSize   int     `yaml:"verify_cache_size" mapstructure:"verify_cache_size"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// I18nConfig configures localization and AI translation batching.
type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language" mapstructure:"default_language"`
	BatchSize       int    `yaml:"batch_size" mapstructure:"batch_size"`
	Concurrency     int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// LocateConfig configures the simulated location provider.
type LocateConfig struct {
	DelayMs   int     `yaml:"delay_ms" mapstructure:"delay_ms"`
	RefLat    float64 `yaml:"ref_lat" mapstructure:"ref_lat"`
	RefLon    float64 `yaml:"ref_lon" mapstructure:"ref_lon"`
	JitterDeg float64 `yaml:"jitter_deg" mapstructure:"jitter_deg"`
}

// FarmerConfig is the profile the service acts for.
type FarmerConfig struct {
	Name           string `yaml:"name" mapstructure:"name"`
	Email          string `yaml:"email" mapstructure:"email"`
	RewardsBalance int    `yaml:"rewards_balance" mapstructure:"rewards_balance"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxUploadMB    int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path looks
// for an optional config.yaml in the working directory; a non-empty path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetConfigType("yaml")

	// Environment
	v.SetEnvPrefix("HERB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "herb-harvest.db")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout_secs", 60)
	v.SetDefault("ai.max_attempts", 1)
	v.SetDefault("ai.requests_per_second", 2.0)
	v.SetDefault("ai.verify_cache_size", 128)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("i18n.default_language", "en")
	v.SetDefault("i18n.batch_size", 40)
	v.SetDefault("i18n.concurrency", 2)
	v.SetDefault("locate.delay_ms", 1000)
	v.SetDefault("locate.ref_lat", 34.0522)
	v.SetDefault("locate.ref_lon", -118.2437)
	v.SetDefault("locate.jitter_deg", 0.05)
	v.SetDefault("farmer.name", "Jane Farmer")
	v.SetDefault("farmer.email", "farmer@example.com")
	v.SetDefault("farmer.rewards_balance", 1250)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 10)
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

// Validate checks the settings a command needs. mode is "ai" for anything
// that calls a completion provider and "serve" for the HTTP API, which also
// needs a provider.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite", "memory":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for postgres")
		}
	default:
		problems = append(problems, "store.driver must be sqlite, postgres or memory")
	}

	if mode == "ai" || mode == "serve" {
		switch c.AI.Provider {
		case "gemini":
			if c.Gemini.Key == "" {
				problems = append(problems, "gemini.key is required (HERB_GEMINI_KEY)")
			}
		case "anthropic":
			if c.Anthropic.Key == "" {
				problems = append(problems, "anthropic.key is required (HERB_ANTHROPIC_KEY)")
			}
		default:
			problems = append(problems, "ai.provider must be gemini or anthropic")
		}
		if c.AI.TimeoutSecs <= 0 {
			problems = append(problems, "ai.timeout_secs must be positive")
		}
	}

	if mode == "serve" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		problems = append(problems, "server.port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
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
