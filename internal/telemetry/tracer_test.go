package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracer(ctx, Config{ServiceName: "kitchenhub-test", Env: "test"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, shutdown(context.Background()))
	})

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()
	require.True(t, span.SpanContext().IsValid())
}
