package observability_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/amc-launcher/amcui/internal/observability"
)

type testPropagator struct{}

func (testPropagator) Inject(context.Context, propagation.TextMapCarrier) {}

func (testPropagator) Extract(ctx context.Context, _ propagation.TextMapCarrier) context.Context {
	return ctx
}

func (testPropagator) Fields() []string { return nil }

type testErrorHandler struct{}

func (testErrorHandler) Handle(error) {}

// installSentinels swaps the otel globals for recognizable values and
// returns a check that they are back in place.
func installSentinels(t *testing.T) func(when string) {
	t.Helper()

	origTP := otel.GetTracerProvider()
	origPropagator := otel.GetTextMapPropagator()
	origErrorHandler := otel.GetErrorHandler()

	sentinelTP := sdktrace.NewTracerProvider()

	t.Cleanup(func() {
		_ = sentinelTP.Shutdown(context.Background())

		otel.SetTracerProvider(origTP)
		otel.SetTextMapPropagator(origPropagator)
		otel.SetErrorHandler(origErrorHandler)
	})

	otel.SetTracerProvider(sentinelTP)
	otel.SetTextMapPropagator(testPropagator{})
	otel.SetErrorHandler(testErrorHandler{})

	return func(when string) {
		t.Helper()

		if got := otel.GetTracerProvider(); got != sentinelTP {
			t.Fatalf("tracer provider not restored %s", when)
		}

		if _, ok := otel.GetTextMapPropagator().(testPropagator); !ok {
			t.Fatalf("propagator not restored %s", when)
		}

		if _, ok := otel.GetErrorHandler().(testErrorHandler); !ok {
			t.Fatalf("error handler not restored %s", when)
		}
	}
}

func TestSetupTelemetry_Disabled(t *testing.T) {
	assertRestored := installSentinels(t)

	shutdown, err := observability.SetupTelemetry(t.Context(), &observability.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertRestored("when telemetry is disabled")

	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTelemetry_NilConfig(t *testing.T) {
	shutdown, err := observability.SetupTelemetry(t.Context(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTelemetry_Enabled(t *testing.T) {
	assertRestored := installSentinels(t)
	sentinel := otel.GetTracerProvider()

	shutdown, err := observability.SetupTelemetry(t.Context(), &observability.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "localhost:4318",
		ServiceName: "amcui-test",
		Version:     "0.0.1",
		Commit:      "abc123",
		Environment: "test",
		HostMode:    "websocket",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tp := otel.GetTracerProvider()
	if _, isNoop := tp.(*noop.TracerProvider); isNoop {
		t.Fatal("expected real TracerProvider, got noop")
	}

	if tp == sentinel {
		t.Fatal("expected setup to replace tracer provider")
	}

	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}

	assertRestored("after shutdown")
}

func TestSetupTelemetry_ShutdownRestoresGlobalsOnCanceledContext(t *testing.T) {
	assertRestored := installSentinels(t)

	shutdown, err := observability.SetupTelemetry(t.Context(), &observability.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	canceledCtx, cancel := context.WithCancel(t.Context())
	cancel()

	_ = shutdown(canceledCtx)

	assertRestored("after a failed shutdown")
}

func TestIsTelemetryEnabled(t *testing.T) {
	tests := []struct {
		name  string
		amcui string
		otel  string
		want  bool
	}{
		{"both empty", "", "", false},
		{"otel true", "", "true", true},
		{"otel TRUE", "", "TRUE", true},
		{"otel 1", "", "1", true},
		{"otel yes", "", "yes", true},
		{"otel false", "", "false", false},
		{"otel random", "", "random", false},
		{"otel whitespace true", "", "  true  ", true},
		{"amcui on", "on", "", true},
		{"amcui off wins", "off", "true", false},
		{"amcui on wins", "1", "false", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AMCUI_TELEMETRY", tt.amcui)
			t.Setenv("OTEL_ENABLED", tt.otel)

			if got := observability.IsTelemetryEnabled(); got != tt.want {
				t.Errorf("IsTelemetryEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracer_ReturnsNamedTracer(t *testing.T) {
	t.Parallel()

	if observability.Tracer("amcui.test") == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestResourceAttributes(t *testing.T) {
	tests := []struct {
		name    string
		cfg     observability.TelemetryConfig
		envName string
		want    map[string]string
	}{
		{
			name: "defaults",
			cfg:  observability.TelemetryConfig{Version: "1.2.0"},
			want: map[string]string{
				"service.name":           "amcui",
				"service.namespace":      "amc-launcher",
				"service.version":        "1.2.0",
				"deployment.environment": "development",
				"amcui.host.mode":        "auto",
				"amcui.host.encoding":    "json",
			},
		},
		{
			name: "configured host",
			cfg: observability.TelemetryConfig{
				HostMode:     "stdio",
				HostEncoding: "cbor",
				Commit:       "abc123",
				Environment:  "ci",
			},
			want: map[string]string{
				"deployment.environment": "ci",
				"amcui.host.mode":        "stdio",
				"amcui.host.encoding":    "cbor",
				"service.commit":         "abc123",
			},
		},
		{
			name:    "service name from env",
			envName: "launcher-ui",
			want:    map[string]string{"service.name": "launcher-ui"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_SERVICE_NAME", tt.envName)
			t.Setenv("OTEL_ENVIRONMENT", "")

			got := attrMap(observability.ResourceAttributes(&tt.cfg))
			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("%s = %q, want %q", key, got[key], want)
				}
			}
		})
	}
}

func TestResourceAttributes_NoCommitWhenUnset(t *testing.T) {
	got := attrMap(observability.ResourceAttributes(&observability.TelemetryConfig{}))
	if _, ok := got["service.commit"]; ok {
		t.Error("service.commit recorded without a commit")
	}
}

func TestDispatchAttributes(t *testing.T) {
	got := attrMap(observability.DispatchAttributes("log_history", "awaiting_snapshot"))

	if got["amcui.envelope.kind"] != "log_history" || got["amcui.session.mode"] != "awaiting_snapshot" {
		t.Errorf("DispatchAttributes() = %v", got)
	}
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsString()
	}

	return out
}
