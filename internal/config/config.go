// Package config loads service configuration from environment variables
// (plus an optional local .env file) through viper.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable of the ledger service. SnapshotDSN and
// RabbitMQURL are optional; leaving them empty disables the corresponding
// collaborator.
type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	SnapshotDSN   string `mapstructure:"SNAPSHOT_DSN"`
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	EventExchange string `mapstructure:"EVENT_EXCHANGE"`
}

// Load reads configuration from the environment, with path pointing at the
// directory that may contain a .env file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("SNAPSHOT_DSN", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENT_EXCHANGE", "ledger.events")

	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "ENVIRONMENT",
		"SNAPSHOT_DSN", "RABBITMQ_URL", "EVENT_EXCHANGE",
	} {
		_ = v.BindEnv(key)
	}

	// The .env file is optional; only a malformed one is an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.ServerPort = strings.TrimSpace(cfg.ServerPort)
	cfg.SnapshotDSN = strings.TrimSpace(cfg.SnapshotDSN)
	cfg.RabbitMQURL = strings.TrimSpace(cfg.RabbitMQURL)
	cfg.EventExchange = strings.TrimSpace(cfg.EventExchange)

	return cfg, nil
}

// IsDevelopment reports whether the service runs with a development logging
// profile.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "development", "local", "dev":
		return true
	default:
		return false
	}
}
