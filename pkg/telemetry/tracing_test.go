package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestClampRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ClampRatio(tt.in))
	}
}

func TestSetupTracing_Disabled_NoopShutdown(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), Options{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.NotNil(t, otel.GetTextMapPropagator())
}

func TestNewProvider_RecordsSpansWithServiceResource(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := newProvider(sdktrace.WithSpanProcessor(rec), Options{ServiceName: "adbridge", SampleRatio: 1, InstanceID: "pod-1"})
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "kafka.batch")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "kafka.batch", ended[0].Name())

	attrs := map[string]string{}
	for _, kv := range ended[0].Resource().Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "adbridge", attrs["service.name"])
	require.Equal(t, "pod-1", attrs["service.instance.id"])
}

func TestNewProvider_ZeroRatioDropsRootSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := newProvider(sdktrace.WithSpanProcessor(rec), Options{ServiceName: "adbridge", SampleRatio: 0})
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()
	require.Empty(t, rec.Ended())
}
