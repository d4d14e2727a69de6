package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables understood by the server.
// Pointer fields stay nil when the variable is unset, so only present
// variables override earlier sources.
type EnvConfig struct {
	EndpointAddrHTTP      *string        `env:"SERVER_ADDRESS"`
	DatabaseDSN           *string        `env:"DATABASE_URI"`
	SecretKey             *string        `env:"JWT_SECRET"`
	TokenValidityDuration *time.Duration `env:"TOKEN_VALIDITY"`
	LogLevel              *string        `env:"LOG_LEVEL"`
	LogFormat             *string        `env:"LOG_FORMAT"`
}

// parseEnv overlays config with environment variables. Malformed values
// (for example an unparsable duration) panic, like the other sources.
func parseEnv(config *Config) {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *e.EndpointAddrHTTP
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.SecretKey != nil {
		config.SecretKey = *e.SecretKey
	}
	if e.TokenValidityDuration != nil {
		config.TokenValidityDuration = *e.TokenValidityDuration
	}
	if e.LogLevel != nil {
		config.LogLevel = *e.LogLevel
	}
	if e.LogFormat != nil {
		config.LogFormat = *e.LogFormat
	}
}
