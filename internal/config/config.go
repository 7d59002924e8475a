package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	JWTSecret         string
	JWTRefreshSecret  string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	SendgridAPIKey    string
	MailFromName      string
	MailFromAddress   string
	MailFallbackTo    string
	DashboardCacheTTL time.Duration
	RequestTimeout    time.Duration
	SubmitRateLimit   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRADTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GradTrack API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("access_token_ttl", "15m")
	v.SetDefault("refresh_token_ttl", "720h")
	v.SetDefault("mail.from_name", "GradTrack")
	v.SetDefault("mail.from_address", "no-reply@gradtrack.dev")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("submit_rate_limit", 5)

	accessTTL, err := time.ParseDuration(v.GetString("access_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid access token ttl: %w", err)
	}

	refreshTTL, err := time.ParseDuration(v.GetString("refresh_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid refresh token ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	requestTimeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid request timeout: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		JWTRefreshSecret:  v.GetString("jwt.refresh_secret"),
		AccessTokenTTL:    accessTTL,
		RefreshTokenTTL:   refreshTTL,
		SendgridAPIKey:    v.GetString("sendgrid_api_key"),
		MailFromName:      v.GetString("mail.from_name"),
		MailFromAddress:   v.GetString("mail.from_address"),
		MailFallbackTo:    v.GetString("mail.fallback_to"),
		DashboardCacheTTL: cacheTTL,
		RequestTimeout:    requestTimeout,
		SubmitRateLimit:   v.GetInt("submit_rate_limit"),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("jwt secrets must be provided")
	}

	if cfg.SubmitRateLimit <= 0 {
		cfg.SubmitRateLimit = 5
	}

	return cfg, nil
}
