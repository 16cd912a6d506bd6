package config

// DevSigningKey is the fallback JWT signing key used when no secret is
// configured. It exists so the service starts in development without any
// configuration, and it is NEVER acceptable for production: Load logs an
// explicit warning whenever it is in use.
const DevSigningKey = "super-secret-jwt-key-for-development-only"

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the database settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the token-issuance settings consumed by the
// credential issuer.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer               string `mapstructure:"issuer" validate:"required"`
	Audience             string `mapstructure:"audience" validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// UsesDevSigningKey reports whether the configuration is still on the
// development fallback key.
func (c AuthConfig) UsesDevSigningKey() bool {
	return c.JWTSecret == DevSigningKey
}
