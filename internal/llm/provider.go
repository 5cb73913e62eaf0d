package llm

import (
	"context"
)

// Provider defines the interface for generative text services. The pipeline
// relies only on this contract: a templated text request in, free text out.
// No schema is enforced on the response.
type Provider interface {
	// Generate issues one generation request and returns the service's text
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model        string
	SystemPrompt string
	InputArray   []map[string]any
}

// GenerationResponse contains the result from the generative service
type GenerationResponse struct {
	Text  string
	Usage Usage
}

// Usage reports token consumption for one generation
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
