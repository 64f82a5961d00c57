package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TASKBOARD"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(viper.New(), false)
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v, true)
}

// load reads the config file, then environment overrides. A missing file is
// only an error when its path was given explicitly.
func load(v *viper.Viper, explicitFile bool) (*Config, error) {
	setDefaults(v)

	if !explicitFile {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.default_locale", "pt-BR")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("backend.timeout_seconds", 10)
	v.SetDefault("backend.token_lifetime_minutes", 15)
	v.SetDefault("backend.token_subject", "taskboard")
	v.SetDefault("notify.store", "memory")
	v.SetDefault("notify.ttl_seconds", 300)
	v.SetDefault("cors.allowed_origins", []string{})
}

// bindEnvs registers every key so that Unmarshal sees environment values
// for keys absent from the config file.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.default_locale",
		"server.shutdown_timeout_seconds",
		"backend.base_url",
		"backend.timeout_seconds",
		"backend.jwt_secret",
		"backend.token_lifetime_minutes",
		"backend.token_subject",
		"notify.store",
		"notify.redis_url",
		"notify.ttl_seconds",
		"cors.allowed_origins",
	} {
		_ = v.BindEnv(key)
	}
}
