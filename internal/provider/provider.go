// Package provider abstracts the generative-model endpoints the analysis
// pipeline can talk to. Swapping providers never changes the prompt or the
// normalization contract.
package provider

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/internal/config"
	"github.com/sells-group/decision-cli/pkg/anthropic"
	"github.com/sells-group/decision-cli/pkg/openai"
)

// GenerateRequest carries one prompt to a model endpoint with fixed
// sampling parameters.
type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TokenUsage reports token consumption for one generation.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerateResponse is the raw text produced by a model endpoint.
type GenerateResponse struct {
	Text  string
	Model string
	Usage TokenUsage
}

// Provider is a single generative-model endpoint.
type Provider interface {
	// Name identifies the provider in logs and progress messages.
	Name() string
	// Generate submits the prompt and returns the model's raw text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// FromConfig builds a provider from one explicit config block. No process
// environment is consulted.
func FromConfig(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropic(anthropic.NewClient(cfg.APIKey, cfg.BaseURL), cfg.Model), nil
	case "groq", "openrouter":
		client := openai.NewClient(cfg.APIKey, cfg.BaseURL, openai.WithModel(cfg.Model))
		return NewOpenAI(cfg.Provider, client, cfg.Model), nil
	default:
		return nil, eris.Errorf("provider: unknown provider %q", cfg.Provider)
	}
}

// Pair builds the primary and fallback providers from config.
func Pair(cfg config.ProvidersConfig) (primary, fallback Provider, err error) {
	primary, err = FromConfig(cfg.Primary)
	if err != nil {
		return nil, nil, eris.Wrap(err, "provider: primary")
	}
	fallback, err = FromConfig(cfg.Fallback)
	if err != nil {
		return nil, nil, eris.Wrap(err, "provider: fallback")
	}
	return primary, fallback, nil
}
