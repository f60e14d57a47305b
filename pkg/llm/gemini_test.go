package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, KindRateLimited},
		{"status only", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, KindRateLimited},
		{"bad request", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, KindTransport},
		{"network", errors.New("dial tcp: connection refused"), KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(classifyGeminiError(tt.err)); got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}
