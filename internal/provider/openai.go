package provider

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/pkg/openai"
)

// openaiProvider adapts an OpenAI-compatible chat-completions endpoint
// (Groq, OpenRouter) to the Provider interface.
type openaiProvider struct {
	name   string
	client openai.Client
	model  string
}

// NewOpenAI wraps an OpenAI-compatible client as a Provider. The name
// distinguishes endpoints (e.g. "groq" vs "openrouter") in logs.
func NewOpenAI(name string, client openai.Client, model string) Provider {
	return &openaiProvider{name: name, client: client, model: model}
}

func (p *openaiProvider) Name() string {
	return p.name
}

func (p *openaiProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp := req.Temperature
	maxTokens := req.MaxTokens
	resp, err := p.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "provider: %s generate", p.name)
	}
	if len(resp.Choices) == 0 {
		return nil, eris.Errorf("provider: %s returned no choices", p.name)
	}

	return &GenerateResponse{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
