package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decision-cli/internal/config"
	"github.com/sells-group/decision-cli/pkg/anthropic"
	"github.com/sells-group/decision-cli/pkg/openai"
)

// --- Anthropic mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- OpenAI mock ---

type mockOpenAIClient struct {
	mock.Mock
}

func (m *mockOpenAIClient) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openai.ChatCompletionResponse), args.Error(1)
}

func TestAnthropicProvider_Generate(t *testing.T) {
	t.Parallel()

	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-haiku-4-5-20251001" &&
			req.MaxTokens == 2000 &&
			len(req.System) == 1 &&
			req.System[0].Text == "system instruction" &&
			len(req.Messages) == 1 &&
			req.Messages[0].Content == "the prompt"
	})).Return(&anthropic.MessageResponse{
		Model: "claude-haiku-4-5-20251001",
		Content: []anthropic.ContentBlock{
			{Type: "text", Text: `{"ok":`},
			{Type: "text", Text: `true}`},
		},
		Usage: anthropic.TokenUsage{InputTokens: 100, OutputTokens: 20},
	}, nil)

	p := NewAnthropic(client, "claude-haiku-4-5-20251001")
	assert.Equal(t, "anthropic", p.Name())

	resp, err := p.Generate(context.Background(), GenerateRequest{
		System:      "system instruction",
		Prompt:      "the prompt",
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Text)
	assert.Equal(t, 100, resp.Usage.InputTokens)
	assert.Equal(t, 20, resp.Usage.OutputTokens)
	client.AssertExpectations(t)
}

func TestAnthropicProvider_GenerateError(t *testing.T) {
	t.Parallel()

	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	p := NewAnthropic(client, "m")
	_, err := p.Generate(context.Background(), GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic generate")
}

func TestOpenAIProvider_Generate(t *testing.T) {
	t.Parallel()

	client := &mockOpenAIClient{}
	client.On("ChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == "llama-3.3-70b-versatile" &&
			len(req.Messages) == 2 &&
			req.Messages[0].Role == "system" &&
			req.Messages[1].Role == "user" &&
			req.MaxTokens != nil && *req.MaxTokens == 2000 &&
			req.Temperature != nil && *req.Temperature == 0.3
	})).Return(&openai.ChatCompletionResponse{
		Model: "llama-3.3-70b-versatile",
		Choices: []openai.Choice{
			{Message: openai.Message{Role: "assistant", Content: `{"answer": 1}`}},
		},
		Usage: openai.Usage{PromptTokens: 50, CompletionTokens: 10},
	}, nil)

	p := NewOpenAI("groq", client, "llama-3.3-70b-versatile")
	assert.Equal(t, "groq", p.Name())

	resp, err := p.Generate(context.Background(), GenerateRequest{
		System:      "sys",
		Prompt:      "user",
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"answer": 1}`, resp.Text)
	assert.Equal(t, 50, resp.Usage.InputTokens)
	client.AssertExpectations(t)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	t.Parallel()

	client := &mockOpenAIClient{}
	client.On("ChatCompletion", mock.Anything, mock.Anything).Return(&openai.ChatCompletionResponse{}, nil)

	p := NewOpenAI("openrouter", client, "m")
	_, err := p.Generate(context.Background(), GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.ProviderConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "anthropic",
			cfg:      config.ProviderConfig{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:     "groq",
			cfg:      config.ProviderConfig{Provider: "groq", Model: "llama-3.3-70b-versatile", BaseURL: "https://api.groq.com/openai/v1"},
			wantName: "groq",
		},
		{
			name:     "openrouter",
			cfg:      config.ProviderConfig{Provider: "openrouter", Model: "mistralai/mistral-7b-instruct:free", BaseURL: "https://openrouter.ai/api/v1"},
			wantName: "openrouter",
		},
		{
			name:    "unknown",
			cfg:     config.ProviderConfig{Provider: "aol"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := FromConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestPair(t *testing.T) {
	t.Parallel()

	primary, fallback, err := Pair(config.ProvidersConfig{
		Primary:  config.ProviderConfig{Provider: "groq", Model: "a", BaseURL: "http://x"},
		Fallback: config.ProviderConfig{Provider: "anthropic", Model: "b", APIKey: "k"},
	})
	require.NoError(t, err)
	assert.Equal(t, "groq", primary.Name())
	assert.Equal(t, "anthropic", fallback.Name())

	_, _, err = Pair(config.ProvidersConfig{
		Primary: config.ProviderConfig{Provider: "nope"},
	})
	require.Error(t, err)
}
