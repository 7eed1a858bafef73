package translator

import (
	"context"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"docx-translator/internal/types"
)

// Backend produces one chat completion for a system/user prompt pair.
// The production implementation talks to an OpenAI-compatible endpoint;
// tests substitute their own.
type Backend interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// openAIBackend wraps an eino chat model configured against an
// OpenAI-compatible API.
type openAIBackend struct {
	chatModel *openai.ChatModel
}

// NewOpenAIBackend creates a Backend for the given OpenAI-compatible
// endpoint. baseURL may be empty for the official API. Temperature is
// pinned to zero so repeated runs translate identically.
func NewOpenAIBackend(ctx context.Context, apiKey, baseURL, model string) (Backend, error) {
	if apiKey == "" {
		return nil, types.NewAppError(types.ErrConfig, "OpenAI API key is not configured", nil)
	}
	if model == "" {
		model = "gpt-4o"
	}

	temperature := float32(0)
	cfg := &openai.ChatModelConfig{
		Model:       model,
		APIKey:      apiKey,
		Temperature: &temperature,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, types.NewAppError(types.ErrAPICall, "failed to create chat model", err)
	}
	return &openAIBackend{chatModel: chatModel}, nil
}

func (b *openAIBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	response, err := b.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", types.NewAppError(types.ErrAPICall, "chat completion failed", err)
	}
	return strings.TrimSpace(response.Content), nil
}
