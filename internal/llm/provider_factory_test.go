package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProviderByModel(t *testing.T) {
	factory := NewProviderFactory("sk-test", "gm-test")
	ctx := context.Background()

	tests := []struct {
		name     string
		model    string
		expected string
	}{
		{name: "gpt prefix", model: "gpt-5.1-mini", expected: "openai"},
		{name: "gpt uppercase", model: "GPT-4o", expected: "openai"},
		{name: "gemini prefix", model: "gemini-2.5-flash", expected: "gemini"},
		{name: "unknown defaults to openai", model: "mystery-model", expected: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := factory.GetProvider(ctx, tt.model, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Name())
		})
	}
}

func TestGetProviderByExplicitName(t *testing.T) {
	factory := NewProviderFactory("sk-test", "gm-test")
	ctx := context.Background()

	p, err := factory.GetProvider(ctx, "gpt-5.1", "gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name(), "explicit provider beats model inference")

	p, err = factory.GetProvider(ctx, "gemini-2.5-pro", "openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = factory.GetProvider(ctx, "gpt-5.1", "anthropic")
	require.Error(t, err)
}

func TestGetProviderRequiresAPIKey(t *testing.T) {
	factory := NewProviderFactory("", "")
	ctx := context.Background()

	_, err := factory.GetProvider(ctx, "gpt-5.1", "")
	require.Error(t, err)

	_, err = factory.GetProvider(ctx, "gemini-2.5-flash", "")
	require.Error(t, err)

	_, err = factory.GetProvider(ctx, "", "openai")
	require.Error(t, err)
}
