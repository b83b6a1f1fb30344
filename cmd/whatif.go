package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/model"
)

var whatifWeights []string

var whatifCmd = &cobra.Command{
	Use:   "whatif <decision-id>",
	Short: "Re-rank an analyzed decision with adjusted criterion weights",
	Long:  "Recomputes weighted totals and rankings locally from the stored analysis result. Nothing is persisted and no model call is made; the stored result stays untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := st.GetDecision(ctx, args[0])
		if err != nil {
			return err
		}
		if d.Result == nil {
			return eris.Errorf("decision %s has no analysis result yet", args[0])
		}

		edited, err := applyWeightEdits(d.Criteria, whatifWeights)
		if err != nil {
			return err
		}

		rescored := analysis.Rescore(d.Result.Scores, d.Criteria, edited)
		ranked := analysis.Rank(rescored, d.Result.Scores)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tOPTION\tTOTAL\tCHANGE")
		for _, r := range ranked {
			fmt.Fprintf(w, "#%d\t%s\t%.2f\t%s\n", r.Rank, r.OptionLabel, r.TotalScore, formatDelta(r.Delta))
		}
		return w.Flush()
	},
}

func init() {
	whatifCmd.Flags().StringArrayVar(&whatifWeights, "weight", nil, `criterion weight override as "Name=N" (repeatable, N in 1-10)`)
	rootCmd.AddCommand(whatifCmd)
}

// applyWeightEdits returns a copy of criteria with the given "Name=N"
// overrides applied. The original slice is never mutated; edited weights
// must stay in [1,10] and must name an existing criterion.
func applyWeightEdits(criteria []model.Criterion, edits []string) ([]model.Criterion, error) {
	out := append([]model.Criterion(nil), criteria...)

	for _, edit := range edits {
		name, value, ok := strings.Cut(edit, "=")
		if !ok {
			return nil, eris.Errorf("invalid weight override %q, expected Name=N", edit)
		}
		weight, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || weight < 1 || weight > 10 {
			return nil, eris.Errorf("invalid weight in %q, must be an integer in 1-10", edit)
		}

		name = strings.TrimSpace(name)
		found := false
		for i := range out {
			if out[i].Name == name {
				out[i].Weight = weight
				found = true
			}
		}
		if !found {
			return nil, eris.Errorf("no criterion named %q", name)
		}
	}

	return out, nil
}

func formatDelta(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("up %d", delta)
	case delta < 0:
		return fmt.Sprintf("down %d", -delta)
	default:
		return "-"
	}
}
