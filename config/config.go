package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Search SearchConfig `mapstructure:"search"`
	Upload UploadConfig `mapstructure:"upload"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds vision model configuration
type GeminiConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	StructuredOutput bool   `mapstructure:"structured_output"`
	BaseURL          string `mapstructure:"base_url"`
}

// SearchConfig holds web search provider configuration
type SearchConfig struct {
	Provider         string        `mapstructure:"provider"` // "serper" or "tavily"
	SerperAPIKey     string        `mapstructure:"serper_api_key"`
	SerperBaseURL    string        `mapstructure:"serper_base_url"`
	TavilyAPIKey     string        `mapstructure:"tavily_api_key"`
	TavilyBaseURL    string        `mapstructure:"tavily_base_url"`
	NumResults       int           `mapstructure:"num_results"`
	Timeout          time.Duration `mapstructure:"timeout"`
	SimplifyKeywords bool          `mapstructure:"simplify_keywords"`
}

// UploadConfig holds image upload limits
type UploadConfig struct {
	MaxImageSizeMB int `mapstructure:"max_image_size_mb"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// APIKey returns the credential of the selected search provider
func (c SearchConfig) APIKey() string {
	if c.Provider == "tavily" {
		return c.TavilyAPIKey
	}
	return c.SerperAPIKey
}

// MaxImageBytes returns the upload limit in bytes
func (c UploadConfig) MaxImageBytes() int64 {
	return int64(c.MaxImageSizeMB) * 1024 * 1024
}

// Load loads configuration from environment variables, an optional .env file
// and an optional config file. Missing provider keys are not an error; the
// corresponding endpoints report that they are not configured.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/oshilens/")

	// Environment variable settings: search.num_results -> OSHILENS_SEARCH_NUM_RESULTS
	v.SetEnvPrefix("OSHILENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.structured_output", true)
	v.SetDefault("gemini.base_url", "")

	// Search defaults
	v.SetDefault("search.provider", "serper")
	v.SetDefault("search.serper_base_url", "https://google.serper.dev")
	v.SetDefault("search.tavily_base_url", "https://api.tavily.com")
	v.SetDefault("search.num_results", 10)
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.simplify_keywords", true)

	// Upload defaults
	v.SetDefault("upload.max_image_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// bindEnv binds secrets, which have no defaults, to both the prefixed name and
// the conventional provider variable.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"gemini.api_key":        {"OSHILENS_GEMINI_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY", "GEMINI_API_KEY"},
		"search.serper_api_key": {"OSHILENS_SEARCH_SERPER_API_KEY", "SERPER_API_KEY"},
		"search.tavily_api_key": {"OSHILENS_SEARCH_TAVILY_API_KEY", "TAVILY_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// loadEnvFile loads ./.env into the process environment when present.
// Variables already set are left untouched.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(".env")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Search.Provider != "serper" && config.Search.Provider != "tavily" {
		return fmt.Errorf("search provider must be 'serper' or 'tavily', got: %s", config.Search.Provider)
	}

	if config.Search.NumResults <= 0 {
		return fmt.Errorf("search num_results must be positive, got: %d", config.Search.NumResults)
	}

	if config.Search.Timeout <= 0 {
		return fmt.Errorf("search timeout must be positive, got: %s", config.Search.Timeout)
	}

	if config.Upload.MaxImageSizeMB <= 0 {
		return fmt.Errorf("upload max_image_size_mb must be positive, got: %d", config.Upload.MaxImageSizeMB)
	}

	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log level is invalid: %w", err)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
