package observability

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by amcui spans and the telemetry resource.
const (
	AttrEnvelopeKind = attribute.Key("amcui.envelope.kind")
	AttrSessionMode  = attribute.Key("amcui.session.mode")
	AttrHostMode     = attribute.Key("amcui.host.mode")
	AttrHostEncoding = attribute.Key("amcui.host.encoding")
)

// TelemetryConfig selects the trace exporter and describes this process.
// HostMode and HostEncoding are the configured host.mode and host.encoding;
// they are recorded on the resource so every span shows how the UI was
// connected.
type TelemetryConfig struct {
	Enabled      bool
	Endpoint     string
	ServiceName  string
	Version      string
	Commit       string
	Environment  string
	HostMode     string
	HostEncoding string
}

// TelemetryShutdown flushes pending spans and restores the previous globals.
type TelemetryShutdown func(ctx context.Context) error

// SetupTelemetry installs an OTLP/HTTP tracer provider. Disabled or nil
// configs leave the global noop provider alone.
func SetupTelemetry(ctx context.Context, cfg *TelemetryConfig) (TelemetryShutdown, error) {
	if cfg == nil || !cfg.Enabled {
		return noopShutdown, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(ResourceAttributes(cfg)...))
	if err != nil {
		return noopShutdown, fmt.Errorf("merge otel resource: %w", err)
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithCompression(otlptracehttp.GzipCompression)}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("create otel exporter: %w", err)
	}

	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	prevHandler := otel.GetErrorHandler()

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	// Export failures must never draw over the TUI.
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(error) {}))

	return func(shutdownCtx context.Context) error {
		defer func() {
			otel.SetTracerProvider(prevProvider)
			otel.SetTextMapPropagator(prevPropagator)
			otel.SetErrorHandler(prevHandler)
		}()

		if err := provider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown otel provider: %w", err)
		}

		return nil
	}, nil
}

// ResourceAttributes describes the amcui process. Empty host settings are
// reported as "auto" and "json", the values amcui falls back to.
func ResourceAttributes(cfg *TelemetryConfig) []attribute.KeyValue {
	service := firstNonEmpty(cfg.ServiceName, os.Getenv("OTEL_SERVICE_NAME"), "amcui")
	environment := firstNonEmpty(cfg.Environment, os.Getenv("OTEL_ENVIRONMENT"), "development")

	attrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.namespace", "amc-launcher"),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", environment),
		AttrHostMode.String(firstNonEmpty(cfg.HostMode, "auto")),
		AttrHostEncoding.String(firstNonEmpty(cfg.HostEncoding, "json")),
	}

	if cfg.Commit != "" {
		attrs = append(attrs, attribute.String("service.commit", cfg.Commit))
	}

	return attrs
}

// DispatchAttributes are the attributes of a bridge.dispatch span.
func DispatchAttributes(kind, mode string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrEnvelopeKind.String(kind),
		AttrSessionMode.String(mode),
	}
}

// Tracer returns a named tracer from the global TracerProvider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(name)
}

// IsTelemetryEnabled reports whether AMCUI_TELEMETRY or OTEL_ENABLED is
// switched on. AMCUI_TELEMETRY wins when both are set.
func IsTelemetryEnabled() bool {
	for _, name := range []string{"AMCUI_TELEMETRY", "OTEL_ENABLED"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
		if v == "" {
			continue
		}

		return v == "1" || v == "true" || v == "yes" || v == "on"
	}

	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func noopShutdown(context.Context) error { return nil }
