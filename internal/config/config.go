package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Notify  NotifyConfig  `mapstructure:"notify"  validate:"required"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port          int    `mapstructure:"port"           validate:"required,gt=0,lt=65536"`
	LogLevel      string `mapstructure:"log_level"      validate:"required,oneof=debug info warn error"`
	DefaultLocale string `mapstructure:"default_locale" validate:"required,oneof=pt-BR en"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// BackendConfig describes the task API this client talks to.
type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	// JWTSecret signs bearer tokens sent to the backend. Empty disables auth.
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	TokenSubject         string `mapstructure:"token_subject"          validate:"required"`
}

// NotifyConfig selects where pending toast notifications are kept.
type NotifyConfig struct {
	Store      string `mapstructure:"store"       validate:"required,oneof=memory redis"`
	RedisURL   string `mapstructure:"redis_url"   validate:"required_if=Store redis"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gt=0"`
}

// CORSConfig controls cross-origin access to the JSON endpoints.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
