package llm

import (
	"context"
	"time"

	"skillpath_backend/pkg/monitoring"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type instrumented struct {
	next     Generator
	provider string
}

// WithTelemetry records a span and prometheus counters around every call.
func WithTelemetry(next Generator, provider string) Generator {
	return &instrumented{next: next, provider: provider}
}

func (i *instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("skillpath/llm").Start(ctx, "llm.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", i.provider),
		attribute.Int("llm.prompt_chars", len(prompt)),
	)

	start := time.Now()
	text, err := i.next.Generate(ctx, prompt)
	monitoring.LLMDuration.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	monitoring.LLMRequests.WithLabelValues(i.provider, outcome).Inc()
	return text, err
}

func (i *instrumented) SetModel(model string) {
	if s, ok := i.next.(ModelSetter); ok {
		s.SetModel(model)
	}
}
