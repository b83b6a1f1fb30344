package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/decision-cli/internal/config"
	"github.com/sells-group/decision-cli/internal/model"
	"github.com/sells-group/decision-cli/internal/provider"
	"github.com/sells-group/decision-cli/internal/resilience"
)

// Progress messages, emitted in pipeline order. The "retrying" message is
// inserted only when the primary tier fails.
const (
	ProgressPreparing  = "Preparing analysis..."
	ProgressAnalyzing  = "Analyzing with AI..."
	ProgressProcessing = "Processing results..."
	ProgressRetrying   = "Retrying with backup..."
	ProgressComplete   = "Analysis complete!"
)

// ProgressFunc receives user-facing progress messages during a run.
type ProgressFunc func(message string)

// Analyzer drives one analysis pipeline run: build the prompt, call the
// primary provider, fail over to the fallback once, normalize. It holds no
// per-run state and persists nothing; status transitions belong to the
// caller.
type Analyzer struct {
	primary  provider.Provider
	fallback provider.Provider
	cfg      config.AnalysisConfig
}

// NewAnalyzer builds an analyzer over a primary/fallback provider pair.
// Zero config values fall back to the standard tuning.
func NewAnalyzer(primary, fallback provider.Provider, cfg config.AnalysisConfig) *Analyzer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if cfg.AttemptTimeoutSecs <= 0 {
		cfg.AttemptTimeoutSecs = 60
	}
	if cfg.ProviderRetries <= 0 {
		cfg.ProviderRetries = 1
	}
	return &Analyzer{primary: primary, fallback: fallback, cfg: cfg}
}

// Analyze runs the full pipeline for one decision. A normalization failure
// at either tier is treated exactly like a transport failure at that tier:
// it triggers failover, or the terminal ErrAnalysisFailed if the fallback
// tier was already in play. Callers gate on Validate first.
func (a *Analyzer) Analyze(ctx context.Context, form model.DecisionFormData, onProgress ProgressFunc) (*model.AnalysisResult, error) {
	progress := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	progress(ProgressPreparing)
	prompt := BuildPrompt(form)

	progress(ProgressAnalyzing)
	text, primaryErr := a.generate(ctx, a.primary, prompt)
	if primaryErr == nil {
		progress(ProgressProcessing)
		result, err := Normalize(text, form)
		if err == nil {
			progress(ProgressComplete)
			return result, nil
		}
		primaryErr = err
	}

	zap.L().Warn("primary provider failed, trying fallback",
		zap.String("provider", a.primary.Name()),
		zap.Error(primaryErr))
	progress(ProgressRetrying)

	text, fallbackErr := a.generate(ctx, a.fallback, prompt)
	if fallbackErr == nil {
		var result *model.AnalysisResult
		result, fallbackErr = Normalize(text, form)
		if fallbackErr == nil {
			progress(ProgressComplete)
			return result, nil
		}
	}

	zap.L().Error("fallback provider failed",
		zap.String("provider", a.fallback.Name()),
		zap.Error(fallbackErr))

	return nil, eris.Wrap(errors.Join(ErrAnalysisFailed, primaryErr, fallbackErr), "analysis: both providers failed")
}

// generate runs one provider tier under its own deadline. Transient
// transport errors may be retried within the tier per config; the default
// of one attempt preserves the single-call-then-failover contract.
func (a *Analyzer) generate(ctx context.Context, p provider.Provider, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.AttemptTimeoutSecs)*time.Second)
	defer cancel()

	resp, err := resilience.DoVal(attemptCtx, resilience.RetryConfig{
		MaxAttempts: a.cfg.ProviderRetries,
		OnRetry:     resilience.RetryLogger(p.Name(), "generate"),
	}, func(ctx context.Context) (*provider.GenerateResponse, error) {
		return p.Generate(ctx, provider.GenerateRequest{
			System:      SystemPrompt,
			Prompt:      prompt,
			MaxTokens:   a.cfg.MaxTokens,
			Temperature: a.cfg.Temperature,
		})
	})
	if err != nil {
		return "", eris.Wrapf(err, "analysis: %s generate", p.Name())
	}

	zap.L().Debug("model response received",
		zap.String("provider", p.Name()),
		zap.String("model", resp.Model),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	return resp.Text, nil
}
