package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "ORDER_STRICT_RESOLUTION"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "astrokart", cfg.DBName)
	require.False(t, cfg.OrderStrictResolution)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "astrokart_test")
	t.Setenv("ORDER_STRICT_RESOLUTION", "true")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "astrokart_test", cfg.DBName)
	require.True(t, cfg.OrderStrictResolution)
}

func TestGetEnvBoolGarbage(t *testing.T) {
	t.Setenv("ORDER_STRICT_RESOLUTION", "definitely")
	require.False(t, Load().OrderStrictResolution)
}
