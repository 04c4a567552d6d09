package telemetry

import (
	"context"
	"testing"

	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{"telemetry off", config.TelemetryConfig{Enabled: false, MetricsExportEnabled: true}},
		{"export off", config.TelemetryConfig{Enabled: true, MetricsExportEnabled: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp, err := NewMeterProvider(ctx, tt.cfg, zaptest.NewLogger(t))
			require.NoError(t, err)

			assert.False(t, mp.IsEnabled())
			counter, err := mp.Meter("test").Int64Counter("noop_total")
			require.NoError(t, err)
			counter.Add(ctx, 1)
			assert.NoError(t, mp.Shutdown(ctx))
		})
	}
}
