package wp

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallTracing(t *testing.T) {
	ctx := context.Background()

	t.Run("leaves tracing disabled without an exporter", func(t *testing.T) {
		shutdown, err := InstallTracing(ctx, TelemetryOptions{Service: "test", Exporter: NoExporter})
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("rejects an unknown exporter", func(t *testing.T) {
		_, err := InstallTracing(ctx, TelemetryOptions{Service: "test", Exporter: "zipkin"})

		var unknown *UnknownExporterError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "zipkin", unknown.Exporter)
	})

	t.Run("installs the console exporter", func(t *testing.T) {
		shutdown, err := InstallTracing(ctx, TelemetryOptions{Service: "test", Exporter: ConsoleExporter})
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})
}
