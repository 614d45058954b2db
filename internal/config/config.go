package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SessionSecret string
	DatabaseURL   string
	RedisURL      string
	QuoteAPIKey   string
	QuoteBaseURL  string
}

// ErrQuoteAPIKeyMissing makes a missing quote credential a fatal startup
// condition rather than a per-request error.
var ErrQuoteAPIKeyMissing = errors.New("QUOTE_API_KEY not set")

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	apiKey := viper.GetString("QUOTE_API_KEY")
	if apiKey == "" {
		return nil, ErrQuoteAPIKeyMissing
	}

	baseURL := viper.GetString("QUOTE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://cloud.iexapis.com"
	}

	return &Config{
		Env:           env,
		Port:          port,
		SessionSecret: viper.GetString("SESSION_SECRET"),
		DatabaseURL:   viper.GetString("DATABASE_URL"),
		RedisURL:      viper.GetString("REDIS_URL"),
		QuoteAPIKey:   apiKey,
		QuoteBaseURL:  baseURL,
	}, nil
}
