package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://env/db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "2h")
	t.Setenv("LOG_FORMAT", "text")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env/db", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "forever")

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseEnv(&c) })
}
