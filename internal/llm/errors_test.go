package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

type timeoutErr struct{ timeout bool }

func (e *timeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (e *timeoutErr) Timeout() bool   { return e.timeout }
func (e *timeoutErr) Temporary() bool { return e.timeout }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "wrapped deadline", err: fmt.Errorf("call failed: %w", context.DeadlineExceeded), want: true},
		{name: "openai rate limit", err: &openai.Error{StatusCode: 429}, want: true},
		{name: "openai request timeout", err: &openai.Error{StatusCode: 408}, want: true},
		{name: "openai conflict", err: &openai.Error{StatusCode: 409}, want: true},
		{name: "openai server error", err: &openai.Error{StatusCode: 500}, want: true},
		{name: "openai bad gateway", err: &openai.Error{StatusCode: 502}, want: true},
		{name: "openai bad request", err: &openai.Error{StatusCode: 400}, want: false},
		{name: "openai unauthorized", err: &openai.Error{StatusCode: 401}, want: false},
		{name: "openai not found", err: &openai.Error{StatusCode: 404}, want: false},
		{name: "wrapped openai overload", err: fmt.Errorf("generate: %w", &openai.Error{StatusCode: 503}), want: true},
		{name: "gemini unavailable", err: genai.APIError{Code: 503}, want: true},
		{name: "gemini rate limit", err: genai.APIError{Code: 429}, want: true},
		{name: "gemini invalid argument", err: genai.APIError{Code: 400}, want: false},
		{name: "gemini permission denied", err: genai.APIError{Code: 403}, want: false},
		{name: "net timeout", err: &timeoutErr{timeout: true}, want: true},
		{name: "net non-timeout", err: &timeoutErr{timeout: false}, want: false},
		{name: "plain error", err: errors.New("something broke"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
