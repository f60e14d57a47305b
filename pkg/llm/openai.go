package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	client *resty.Client

	mu    sync.RWMutex
	model string
}

func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key not set")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &OpenAIGenerator{client: client, model: cfg.Model}, nil
}

func (g *OpenAIGenerator) SetModel(model string) {
	if strings.TrimSpace(model) == "" {
		return
	}
	g.mu.Lock()
	g.model = model
	g.mu.Unlock()
}

func (g *OpenAIGenerator) Model() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.model
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": g.Model(),
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", newError(KindTransport, "openai", err)
	}
	return parseChatCompletion(resp.StatusCode(), resp.Body())
}

func parseChatCompletion(status int, body []byte) (string, error) {
	if status == http.StatusTooManyRequests {
		return "", newError(KindRateLimited, "openai", fmt.Errorf("http %d: %s", status, gjson.GetBytes(body, "error.message").String()))
	}
	if status < 200 || status >= 300 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = string(body)
		}
		return "", newError(KindTransport, "openai", fmt.Errorf("http %d: %s", status, msg))
	}
	if !gjson.ValidBytes(body) {
		return "", newError(KindMalformedResponse, "openai", errors.New("response body is not valid JSON"))
	}
	return gjson.GetBytes(body, "choices.0.message.content").String(), nil
}
