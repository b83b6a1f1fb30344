package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/config"
	"github.com/sells-group/decision-cli/internal/provider"
	"github.com/sells-group/decision-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "decision-cli",
	Short: "AI-scored multi-criteria decision analysis",
	Long:  "Scores decision options against weighted criteria using a generative model with primary/fallback failover, and recomputes rankings locally for what-if weight exploration.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initAnalyzer builds the analyzer over the configured provider pair.
func initAnalyzer() (*analysis.Analyzer, error) {
	primary, fallback, err := provider.Pair(cfg.Providers)
	if err != nil {
		return nil, eris.Wrap(err, "init providers")
	}
	return analysis.NewAnalyzer(primary, fallback, cfg.Analysis), nil
}
