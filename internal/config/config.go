package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Analyzer Analyzer `mapstructure:"analyzer"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// YouTube holds YouTube Data API configuration
type YouTube struct {
	APIKey      string `mapstructure:"api_key"`
	MaxItems    int64  `mapstructure:"max_items"`
	MaxComments int64  `mapstructure:"max_comments"`
	Timeout     string `mapstructure:"timeout"`
}

// Gemini holds generative model configuration
type Gemini struct {
	APIKey      string   `mapstructure:"api_key"`
	Models      []string `mapstructure:"models"`
	Timeout     string   `mapstructure:"timeout"`
	MaxTokens   int32    `mapstructure:"max_tokens"`
	Temperature float32  `mapstructure:"temperature"`
}

// Analyzer holds analytics pipeline tuning
type Analyzer struct {
	TopN                  int `mapstructure:"top_n"`
	PopularLimit          int `mapstructure:"popular_limit"`
	ConstructiveMinLength int `mapstructure:"constructive_min_length"`
	ImprovementMinLength  int `mapstructure:"improvement_min_length"`
	GenerativeSampleSize  int `mapstructure:"generative_sample_size"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".tubelens")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("youtube.max_items", 20)
	viper.SetDefault("youtube.max_comments", 100)
	viper.SetDefault("youtube.timeout", "30s")

	viper.SetDefault("gemini.models", []string{
		"gemini-1.5-flash",
		"gemini-1.5-pro",
		"gemini-2.0-flash-exp",
	})
	viper.SetDefault("gemini.timeout", "120s")
	viper.SetDefault("gemini.max_tokens", 8192)
	viper.SetDefault("gemini.temperature", 0.7)

	viper.SetDefault("analyzer.top_n", 5)
	viper.SetDefault("analyzer.popular_limit", 10)
	viper.SetDefault("analyzer.constructive_min_length", 20)
	viper.SetDefault("analyzer.improvement_min_length", 15)
	viper.SetDefault("analyzer.generative_sample_size", 50)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"GOOGLE_YOUTUBE_API_KEY",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"TUBELENS_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errs []string

	if config.YouTube.APIKey == "" {
		errs = append(errs, "YouTube API key is required. Set YOUTUBE_API_KEY environment variable or youtube.api_key in config file")
	}
	// The Gemini key is optional; without it only the keyword strategy is
	// available and idea generation is disabled.
	if len(config.Gemini.Models) == 0 {
		errs = append(errs, "at least one Gemini model must be configured under gemini.models")
	}

	durations := map[string]string{
		"youtube.timeout": config.YouTube.Timeout,
		"gemini.timeout":  config.Gemini.Timeout,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// GenerationTimeout returns the configured generation budget, falling back
// to two minutes when unset or malformed.
func (g Gemini) GenerationTimeout() time.Duration {
	if g.Timeout != "" {
		if d, err := time.ParseDuration(g.Timeout); err == nil {
			return d
		}
	}
	return 2 * time.Minute
}

// FetchTimeout returns the configured provider deadline, falling back to
// thirty seconds when unset or malformed.
func (y YouTube) FetchTimeout() time.Duration {
	if y.Timeout != "" {
		if d, err := time.ParseDuration(y.Timeout); err == nil {
			return d
		}
	}
	return 30 * time.Second
}
