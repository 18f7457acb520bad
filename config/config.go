// Package config resolves runtime settings from .env, the environment and an optional config file.
// File: config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the server reads at startup.
type Config struct {
	AppEnv         string `mapstructure:"app_env"`
	Port           string `mapstructure:"port"`
	ApplicationURL string `mapstructure:"application_url"`

	TemplatesDir string `mapstructure:"templates_dir"`
	StaticDir    string `mapstructure:"static_dir"`
	ContentFile  string `mapstructure:"content_file"`
	LogDir       string `mapstructure:"log_dir"`

	// empty MongoURI selects the in-memory backend
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	SessionSecret string        `mapstructure:"session_secret"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`

	AdminUsername    string        `mapstructure:"admin_username"`
	AdminPassword    string        `mapstructure:"admin_password"`
	AdminSessionIdle time.Duration `mapstructure:"admin_session_idle"`

	ContactDelay   time.Duration `mapstructure:"contact_delay"`
	MetricsEnabled bool          `mapstructure:"metrics_enabled"`
	XRayEnabled    bool          `mapstructure:"xray_enabled"`
}

var defaults = map[string]any{
	"app_env":            "development",
	"port":               "8080",
	"application_url":    "http://localhost:8080",
	"templates_dir":      "templates",
	"static_dir":         "static",
	"content_file":       "",
	"log_dir":            "",
	"mongo_uri":          "",
	"mongo_database":     "wanderlust",
	"session_secret":     "",
	"cookie_secure":      false,
	"jwt_secret":         "",
	"token_ttl":          24 * time.Hour,
	"admin_username":     "admin",
	"admin_password":     "",
	"admin_session_idle": 30 * time.Minute,
	"contact_delay":      time.Second,
	"metrics_enabled":    false,
	"xray_enabled":       false,
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads envFile (ignored when missing), then the environment, then CONFIG_FILE if set.
// Environment variables use the upper-case key names, e.g. MONGO_URI or TOKEN_TTL.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		// a missing .env is normal outside local development
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.IsProduction() {
		if c.SessionSecret == "" {
			return errors.New("SESSION_SECRET is required in production")
		}
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in production")
		}
	}
	if c.SessionSecret == "" {
		c.SessionSecret = "dev-session-secret"
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-jwt-secret"
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
