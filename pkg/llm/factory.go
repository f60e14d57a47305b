package llm

import (
	"context"
	"fmt"

	"skillpath_backend/internal/config"
)

// New builds the configured provider wrapped with telemetry.
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	switch cfg.Provider {
	case "", "gemini":
		g, err := NewGeminiGenerator(ctx, GeminiConfig{
			APIKey:   cfg.APIKey,
			Backend:  cfg.Backend,
			Project:  cfg.Project,
			Location: cfg.Location,
			Model:    cfg.Model,
			Timeout:  cfg.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		return WithTelemetry(g, "gemini"), nil
	case "openai":
		g, err := NewOpenAIGenerator(OpenAIConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		return WithTelemetry(g, "openai"), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
