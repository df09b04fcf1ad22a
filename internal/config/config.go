package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the portal API.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	JWTTTL           time.Duration
	PortalPassword   string
	FSPBaseURL       string
	FSPAPIKey        string
	FSPOperatorID    string
	ScheduleCacheTTL time.Duration
	NATSURL          string
	NATSSubject      string
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
	v.SetEnvPrefix("MAGNOLIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Magnolia Portal API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("portal.password", "password")
	v.SetDefault("fsp.base_url", "https://api.flightschedulepro.com")
	v.SetDefault("schedule.cache_ttl", "5m")
	v.SetDefault("nats.subject", "magnolia.course.completed")

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("schedule.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid schedule cache ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		JWTTTL:           jwtTTL,
		PortalPassword:   v.GetString("portal.password"),
		FSPBaseURL:       strings.TrimRight(v.GetString("fsp.base_url"), "/"),
		FSPAPIKey:        v.GetString("fsp.api_key"),
		FSPOperatorID:    v.GetString("fsp.operator_id"),
		ScheduleCacheTTL: cacheTTL,
		NATSURL:          v.GetString("nats.url"),
		NATSSubject:      v.GetString("nats.subject"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
