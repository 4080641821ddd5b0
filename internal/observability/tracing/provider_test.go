package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"bilingual-quotes/internal/config"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
}

func TestSetup_DisabledInstallsPropagatorOnly(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	p, err := Setup(context.Background(), &config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())

	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(header))

	out := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out))
	assert.Contains(t, out.Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestSetup_NilConfig(t *testing.T) {
	restoreGlobals(t)

	p, err := Setup(context.Background(), nil, "test")
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_EnabledInstallsSDKProvider(t *testing.T) {
	restoreGlobals(t)

	cfg := &config.TracingConfig{
		Enabled:      true,
		Endpoint:     "127.0.0.1:4317",
		Insecure:     true,
		ServiceName:  "bilingual-quotes-test",
		SamplingRate: 1,
	}
	p, err := Setup(context.Background(), cfg, "v1.2.3")
	require.NoError(t, err)
	require.NotNil(t, p.tp)
	assert.Equal(t, p.tp, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}

func TestProvider_ShutdownNil(t *testing.T) {
	var p *Provider
	assert.NoError(t, p.Shutdown(context.Background()))
}
