package genai

import (
	"context"
	"log/slog"
)

// NewChatProvider returns a provider for the first entry of cfg.Providers
// that has an API key. A provider whose client cannot be built is skipped
// with a warning. It returns nil when nothing is usable; the Forwarder
// then answers with ReplyUnconfigured.
func NewChatProvider(ctx context.Context, cfg Config) ChatProvider {
	for _, p := range cfg.ConfiguredProviders() {
		pc := cfg.ProviderConfig(p)

		var (
			provider ChatProvider
			err      error
		)
		switch p {
		case ProviderGemini:
			provider, err = newGeminiChat(ctx, *pc)
		case ProviderGroq, ProviderOpenAI:
			provider, err = newOpenAIChat(p, *pc)
		default:
			continue
		}

		if err != nil {
			slog.WarnContext(ctx, "failed to create chat provider", "provider", p, "error", err)
			continue
		}

		slog.InfoContext(ctx, "chat provider configured", "provider", p)
		return provider
	}

	slog.InfoContext(ctx, "no LLM provider configured for chat")
	return nil
}
