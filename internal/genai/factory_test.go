package genai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguredProviders(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Providers: []Provider{ProviderOpenAI, ProviderGemini, ProviderGroq, "unknown"},
		Gemini:    ProviderConfig{APIKey: "g"},
		OpenAI:    ProviderConfig{APIKey: "o"},
	}

	assert.Equal(t, []Provider{ProviderOpenAI, ProviderGemini}, cfg.ConfiguredProviders())
	assert.Nil(t, cfg.ProviderConfig("unknown"))
}

func TestNewChatProvider_None(t *testing.T) {
	t.Parallel()
	assert.Nil(t, NewChatProvider(context.Background(), Config{Providers: DefaultProviders}))
}

func TestNewChatProvider_FirstConfiguredWins(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Providers: []Provider{ProviderGroq, ProviderGemini},
		Gemini:    ProviderConfig{APIKey: "g"},
		Groq:      ProviderConfig{APIKey: "q"},
	}

	p := NewChatProvider(context.Background(), cfg)
	require.NotNil(t, p)
	assert.Equal(t, ProviderGroq, p.Provider())

	oc, ok := p.(*openaiChat)
	require.True(t, ok)
	assert.Equal(t, DefaultGroqModel, oc.model)
}

func TestNewChatProvider_Gemini(t *testing.T) {
	t.Parallel()
	p := NewChatProvider(context.Background(), Config{
		Providers: DefaultProviders,
		Gemini:    ProviderConfig{APIKey: "g"},
	})
	require.NotNil(t, p)
	assert.Equal(t, ProviderGemini, p.Provider())
	assert.Equal(t, DefaultGeminiModel, p.(*geminiChat).model)
	assert.NoError(t, p.Close())
}

func TestNewChatProvider_CustomModel(t *testing.T) {
	t.Parallel()
	p := NewChatProvider(context.Background(), Config{
		Providers: []Provider{ProviderOpenAI},
		OpenAI:    ProviderConfig{APIKey: "o", Model: "gpt-4.1"},
	})
	require.NotNil(t, p)
	assert.Equal(t, "gpt-4.1", p.(*openaiChat).model)
}
