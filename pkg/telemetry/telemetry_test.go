package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("Empty endpoint disables tracing", func(t *testing.T) {
		shutdown, err := Init(context.Background(), "", "landing-page")
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Endpoint installs a provider without dialing", func(t *testing.T) {
		// grpc.NewClient connects lazily, so no collector is needed here
		shutdown, err := Init(context.Background(), "localhost:4317", "")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = shutdown(ctx)
	})
}
