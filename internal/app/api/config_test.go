package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TEMPORAL_ADDRESS", "")
	t.Setenv("TEMPORAL_NAMESPACE", "")
	t.Setenv("TEMPORAL_DISABLED", "")
	t.Setenv("MAINTENANCE_MODE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	require.False(t, cfg.TemporalDisabled)
	require.False(t, cfg.MaintenanceMode)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	for _, port := range []string{"http", "0", "70000", "-1"} {
		t.Setenv("PORT", port)
		_, err := LoadConfig()
		require.Error(t, err, "PORT=%q", port)
	}
}

func TestLoadConfigTruthyFlags(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("MAINTENANCE_MODE", "TRUE")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.True(t, cfg.TemporalDisabled)
	require.True(t, cfg.MaintenanceMode)
}
