package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// geminiChat implements ChatProvider on the Gemini chats API.
type geminiChat struct {
	client *genai.Client
	model  string
}

func newGeminiChat(ctx context.Context, cfg ProviderConfig) (*geminiChat, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiChat{client: client, model: model}, nil
}

// geminiHistory maps prior turns to Gemini contents.
func geminiHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

// Reply opens a chat seeded with the system instruction and history,
// then sends text as the next user turn.
func (g *geminiChat) Reply(ctx context.Context, history []Message, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	}

	chat, err := g.client.Chats.Create(ctx, g.model, config, geminiHistory(history))
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	start := time.Now()
	resp, err := chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "gemini chat completed",
			"model", g.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", time.Since(start).Milliseconds())
	}

	return resp.Text(), nil
}

func (g *geminiChat) Provider() Provider { return ProviderGemini }

// Close is a no-op; the genai client holds no closable resources.
func (g *geminiChat) Close() error { return nil }
