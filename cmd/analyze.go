package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/model"
	"github.com/sells-group/decision-cli/internal/store"
)

var (
	analyzeFile        string
	analyzeConcurrency int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [decision-id...]",
	Short: "Run AI analysis on stored decisions or a decision file",
	Long:  "Analyzes each decision with the primary provider, falling back once to the backup provider. Stored decisions move draft -> analyzing -> done, reverting to draft on failure.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		if analyzeFile != "" {
			if len(args) > 0 {
				return eris.New("pass either decision ids or --file, not both")
			}
			return analyzeFromFile(ctx, analyzer, analyzeFile)
		}

		if len(args) == 0 {
			return eris.New("at least one decision id (or --file) is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(analyzeConcurrency)
		for _, id := range args {
			g.Go(func() error {
				result, err := analyzeStored(gctx, st, analyzer, id, progressPrinter(id))
				if err != nil {
					zap.L().Error("analysis failed", zap.String("decision", id), zap.Error(err))
					return err
				}
				zap.L().Info("analysis complete",
					zap.String("decision", id),
					zap.String("recommended", result.Recommendation.OptionLabel),
					zap.Float64("confidence", result.Recommendation.Confidence),
				)
				return nil
			})
		}
		return g.Wait()
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "analyze a decision from a YAML or JSON file instead of the store")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 3, "max decisions analyzed in parallel")
	rootCmd.AddCommand(analyzeCmd)
}

// analyzeStored runs the pipeline for one stored decision, driving its
// status transitions: draft -> analyzing -> done, reverting to draft when
// the pipeline fails. A decision already analyzing is refused, which keeps
// one run in flight per decision.
func analyzeStored(ctx context.Context, st store.Store, analyzer decisionAnalyzer, id string, onProgress analysis.ProgressFunc) (*model.AnalysisResult, error) {
	d, err := st.GetDecision(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status == model.StatusAnalyzing {
		return nil, eris.Errorf("decision %s is already being analyzed", id)
	}

	if v := analysis.Validate(d.DecisionFormData); !v.Valid {
		return nil, eris.Wrapf(analysis.ErrValidationFailed,
			"decision %s is not ready for analysis: %s", id, strings.Join(v.Errors, "; "))
	}

	if err := st.UpdateStatus(ctx, id, model.StatusAnalyzing); err != nil {
		return nil, err
	}

	result, err := analyzer.Analyze(ctx, d.DecisionFormData, onProgress)
	if err != nil {
		if revertErr := st.UpdateStatus(context.WithoutCancel(ctx), id, model.StatusDraft); revertErr != nil {
			zap.L().Warn("failed to revert decision status", zap.String("decision", id), zap.Error(revertErr))
		}
		return nil, err
	}

	if err := st.SaveResult(ctx, id, result); err != nil {
		return nil, err
	}
	return result, nil
}

// analyzeFromFile runs the pipeline on a decision file without touching
// the store and prints the result JSON to stdout.
func analyzeFromFile(ctx context.Context, analyzer decisionAnalyzer, path string) error {
	form, err := loadFormFile(path)
	if err != nil {
		return err
	}

	if v := analysis.Validate(*form); !v.Valid {
		return eris.Wrapf(analysis.ErrValidationFailed,
			"decision is not ready for analysis: %s", strings.Join(v.Errors, "; "))
	}

	result, err := analyzer.Analyze(ctx, *form, progressPrinter(form.Title))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadFormFile reads decision form data from a YAML or JSON file.
func loadFormFile(path string) (*model.DecisionFormData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}

	var form model.DecisionFormData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &form); err != nil {
			return nil, eris.Wrapf(err, "parse %s", path)
		}
	default:
		if err := yaml.Unmarshal(raw, &form); err != nil {
			return nil, eris.Wrapf(err, "parse %s", path)
		}
	}
	return &form, nil
}

func progressPrinter(label string) analysis.ProgressFunc {
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", label, msg)
	}
}
