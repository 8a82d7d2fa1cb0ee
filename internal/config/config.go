package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from the
// environment.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	// LocalMode runs the whole application against the in-memory sample
	// dataset without ever contacting Firebase. Intended for demos and
	// development; requires no credentials.
	LocalMode    string `mapstructure:"LOCAL_MODE"`
	TopRankLimit int    `mapstructure:"TOP_RANK_LIMIT"`
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOCAL_MODE", "false")
	viper.SetDefault("TOP_RANK_LIMIT", 5)

	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("LOCAL_MODE")
	viper.BindEnv("TOP_RANK_LIMIT")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if !cfg.IsLocalMode() {
		if cfg.FirebaseProjectID == "" {
			return nil, errors.New("FIREBASE_PROJECT_ID is required unless LOCAL_MODE=true")
		}
	}
	if cfg.TopRankLimit <= 0 {
		return nil, errors.New("TOP_RANK_LIMIT must be positive")
	}

	return &cfg, nil
}

// IsLocalMode reports whether the application should run entirely against
// the in-memory dataset.
func (c *Config) IsLocalMode() bool {
	return strings.EqualFold(c.LocalMode, "true") || c.LocalMode == "1"
}
