package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiChat implements ChatProvider for any OpenAI-compatible endpoint.
type openaiChat struct {
	client   openai.Client
	model    string
	provider Provider
}

func newOpenAIChat(provider Provider, cfg ProviderConfig) (*openaiChat, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		var ok bool
		if baseURL, ok = ProviderEndpoint[provider]; !ok {
			return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
		}
	}

	model := cfg.Model
	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqModel
		case ProviderOpenAI:
			model = DefaultOpenAIModel
		}
	}

	// The SDK retries by default; one request per message is the contract here.
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	return &openaiChat{client: client, model: model, provider: provider}, nil
}

// openaiMessages builds system + history + user messages.
func openaiMessages(history []Message, text string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(SystemInstruction))
	for _, m := range history {
		if m.Role == RoleModel {
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Text))
		}
	}
	return append(msgs, openai.UserMessage(text))
}

func (o *openaiChat) Reply(ctx context.Context, history []Message, text string) (string, error) {
	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: openaiMessages(history, text),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	slog.DebugContext(ctx, "chat completion completed",
		"provider", o.provider,
		"model", o.model,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds())

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *openaiChat) Provider() Provider { return o.provider }

func (o *openaiChat) Close() error { return nil }
