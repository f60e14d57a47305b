// Package llm wraps the text-generation providers used for profile synthesis
// and assessment question generation.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator completes a prompt and returns the raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelSetter is implemented by generators whose model can change on config reload.
type ModelSetter interface {
	SetModel(model string)
}

type Kind int

const (
	KindTransport Kind = iota + 1
	KindRateLimited
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "transport"
	}
}

type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm %s (%s): %v", e.Kind, e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, provider string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// KindOf returns the classification of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsRateLimited(err error) bool {
	return KindOf(err) == KindRateLimited
}

// Malformed wraps a parse failure of provider output.
func Malformed(err error) error {
	return newError(KindMalformedResponse, "", err)
}
