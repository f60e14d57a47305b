package tracing

import (
	"context"
	"testing"

	"skillpath_backend/internal/config"
)

func TestInitTracerStdout(t *testing.T) {
	tp, err := InitTracer(context.Background(), &config.TracingConfig{Exporter: "stdout", ServiceName: "skillpath-test"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestInitTracerUnknownExporter(t *testing.T) {
	if _, err := InitTracer(context.Background(), &config.TracingConfig{Exporter: "jaeger"}); err == nil {
		t.Error("expected an error for an unknown exporter")
	}
}
