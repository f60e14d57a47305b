package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey   string
	Backend  string // "gemini-api" or "vertex"
	Project  string
	Location string
	Model    string
	Timeout  time.Duration
}

type GeminiGenerator struct {
	client  *genai.Client
	timeout time.Duration

	mu    sync.RWMutex
	model string
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: cfg.APIKey}
	if cfg.Backend == "vertex" {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	} else if cfg.APIKey == "" {
		return nil, errors.New("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, timeout: cfg.Timeout, model: cfg.Model}, nil
}

func (g *GeminiGenerator) SetModel(model string) {
	if strings.TrimSpace(model) == "" {
		return
	}
	g.mu.Lock()
	g.model = model
	g.mu.Unlock()
}

func (g *GeminiGenerator) Model() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.model
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.client.Models.GenerateContent(ctx, g.Model(), genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return "", classifyGeminiError(err)
	}
	if result == nil {
		return "", nil
	}
	return result.Text(), nil
}

func classifyGeminiError(err error) error {
	code, status := 0, ""
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status = apiErr.Code, apiErr.Status
	case errors.As(err, &apiErrPtr):
		code, status = apiErrPtr.Code, apiErrPtr.Status
	}
	if code == 0 && strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		status = "RESOURCE_EXHAUSTED"
	}
	if code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" {
		return newError(KindRateLimited, "gemini", err)
	}
	return newError(KindTransport, "gemini", err)
}
