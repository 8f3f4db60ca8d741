// Package genai connects the FoTI chat assistant to hosted LLM APIs.
//
// Gemini uses google.golang.org/genai; Groq and OpenAI use the
// OpenAI-compatible API through github.com/openai/openai-go/v3.
// Exactly one provider serves a process, chosen at startup.
package genai

import "context"

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's OpenAI-compatible API.
	ProviderGroq Provider = "groq"
	// ProviderOpenAI represents the OpenAI API or any endpoint speaking it.
	ProviderOpenAI Provider = "openai"
)

// ProviderEndpoint defines the default base URL for OpenAI-compatible providers.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq:   "https://api.groq.com/openai/v1/",
	ProviderOpenAI: "https://api.openai.com/v1/",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Role is the author of a chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior turn handed to a provider as context.
type Message struct {
	Role Role
	Text string
}

// ChatProvider sends one user message, with prior turns as context, to a
// hosted model and returns the reply text. Implementations make exactly one
// request per call and do not retry.
type ChatProvider interface {
	Reply(ctx context.Context, history []Message, text string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the provider.
	Close() error
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	APIKey  string
	Model   string // empty = default model
	BaseURL string // empty = ProviderEndpoint; OpenAI-compatible only
}

// Config holds configuration for all chat providers.
type Config struct {
	// Providers is the preference order. The first one with an API key is used.
	Providers []Provider

	Gemini ProviderConfig
	Groq   ProviderConfig
	OpenAI ProviderConfig
}

// Default models.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// DefaultProviders is the default provider preference order.
var DefaultProviders = []Provider{ProviderGemini, ProviderGroq, ProviderOpenAI}

// ProviderConfig returns the configuration for p, or nil for an unknown provider.
func (c *Config) ProviderConfig(p Provider) *ProviderConfig {
	switch p {
	case ProviderGemini:
		return &c.Gemini
	case ProviderGroq:
		return &c.Groq
	case ProviderOpenAI:
		return &c.OpenAI
	default:
		return nil
	}
}

// ConfiguredProviders returns the providers with an API key, in preference order.
func (c *Config) ConfiguredProviders() []Provider {
	result := make([]Provider, 0, len(c.Providers))
	for _, p := range c.Providers {
		if pc := c.ProviderConfig(p); pc != nil && pc.APIKey != "" {
			result = append(result, p)
		}
	}
	return result
}
