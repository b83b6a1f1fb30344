package provider

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/pkg/anthropic"
)

// anthropicProvider adapts the Anthropic messages API to the Provider
// interface. The fixed system prompt is sent as a cached system block so
// repeated analyses reuse the warm prompt cache.
type anthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropic wraps an Anthropic client as a Provider.
func NewAnthropic(client anthropic.Client, model string) Provider {
	return &anthropicProvider{client: client, model: model}
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

func (p *anthropicProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp := req.Temperature
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.model,
		MaxTokens:   int64(req.MaxTokens),
		System:      anthropic.BuildCachedSystemBlocks(req.System),
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, eris.Wrap(err, "provider: anthropic generate")
	}

	resp.Usage.LogCost(p.model, "analysis")

	return &GenerateResponse{
		Text:  extractText(resp),
		Model: resp.Model,
		Usage: TokenUsage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

// extractText concatenates all text content blocks.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "" || b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}
