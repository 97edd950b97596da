package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	AccessKey     string `mapstructure:"ACCESS_KEY"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

// Error reports absent or placeholder backend credentials. It is fatal at
// startup; no network call is attempted once it is returned.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

func Load() (Config, error) {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	for _, key := range []string{"DATABASE_URL", "ACCESS_KEY", "REDIS_PASSWORD"} {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects empty values and the "your_..." placeholders that ship in
// env templates.
func (c Config) Validate() error {
	if isPlaceholder(c.DatabaseURL) {
		return &Error{Field: "DATABASE_URL", Reason: "must point at the backend database"}
	}
	if isPlaceholder(c.AccessKey) {
		return &Error{Field: "ACCESS_KEY", Reason: "must be the backend access key"}
	}
	return nil
}

func isPlaceholder(v string) bool {
	return v == "" || strings.HasPrefix(v, "your_")
}
