package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	MembersFile                      string `mapstructure:"MEMBERS_FILE"`

	// SMS credentials are optional. Missing values mean broadcasts are
	// recorded as skipped instead of failing.
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`

	ZenQuoteAPIURL  string        `mapstructure:"ZEN_QUOTE_API_URL"`
	ZenAutoInterval time.Duration `mapstructure:"ZEN_AUTO_INTERVAL"`

	PresenceWindow       time.Duration `mapstructure:"PRESENCE_WINDOW"`
	PresencePollInterval time.Duration `mapstructure:"PRESENCE_POLL_INTERVAL"`

	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB"`
	BroadcastRateLimit  int           `mapstructure:"BROADCAST_RATE_LIMIT"`
	BroadcastRateWindow time.Duration `mapstructure:"BROADCAST_RATE_WINDOW"`

	RabbitMQURL         string `mapstructure:"RABBITMQ_URL"`
	RabbitMQAlertsQueue string `mapstructure:"RABBITMQ_ALERTS_QUEUE"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`
}

// DefaultQuoteAPIURL is the public QuoteSlate endpoint used when
// ZEN_QUOTE_API_URL is not set.
const DefaultQuoteAPIURL = "https://quoteslate.vercel.app/api/quotes/random?minLength=60&maxLength=140"

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CLIENT_URL",
	"MEMBERS_FILE",
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"TWILIO_FROM_NUMBER",
	"ZEN_QUOTE_API_URL",
	"ZEN_AUTO_INTERVAL",
	"PRESENCE_WINDOW",
	"PRESENCE_POLL_INTERVAL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"BROADCAST_RATE_LIMIT",
	"BROADCAST_RATE_WINDOW",
	"RABBITMQ_URL",
	"RABBITMQ_ALERTS_QUEUE",
	"METRICS_ENABLED",
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("MEMBERS_FILE", "configs/members.yaml")
	v.SetDefault("ZEN_QUOTE_API_URL", DefaultQuoteAPIURL)
	v.SetDefault("ZEN_AUTO_INTERVAL", 15*time.Minute)
	v.SetDefault("PRESENCE_WINDOW", 5*time.Minute)
	v.SetDefault("PRESENCE_POLL_INTERVAL", time.Minute)
	v.SetDefault("BROADCAST_RATE_LIMIT", 5)
	v.SetDefault("BROADCAST_RATE_WINDOW", time.Minute)
	v.SetDefault("RABBITMQ_ALERTS_QUEUE", "alerts.broadcast")
	v.SetDefault("METRICS_ENABLED", true)

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.New("failed to bind env " + key + ": " + err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.MembersFile == "" {
		return errors.New("MEMBERS_FILE is required")
	}
	if c.PresenceWindow <= 0 || c.PresencePollInterval <= 0 {
		return errors.New("PRESENCE_WINDOW and PRESENCE_POLL_INTERVAL must be positive")
	}
	if c.ZenAutoInterval <= 0 {
		return errors.New("ZEN_AUTO_INTERVAL must be positive")
	}
	if c.BroadcastRateLimit <= 0 || c.BroadcastRateWindow <= 0 {
		return errors.New("BROADCAST_RATE_LIMIT and BROADCAST_RATE_WINDOW must be positive")
	}
	return nil
}

// SMSConfigured reports whether all three Twilio settings are present.
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
