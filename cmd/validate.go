package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/model"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate [decision-id]",
	Short: "Check whether a decision is ready for analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var form model.DecisionFormData
		switch {
		case validateFile != "":
			f, err := loadFormFile(validateFile)
			if err != nil {
				return err
			}
			form = *f
		case len(args) == 1:
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := st.GetDecision(ctx, args[0])
			if err != nil {
				return err
			}
			form = d.DecisionFormData
		default:
			return eris.New("a decision id or --file is required")
		}

		v := analysis.Validate(form)
		if v.Valid {
			fmt.Println("ready for analysis")
			return nil
		}

		for _, msg := range v.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", msg)
		}
		return eris.Errorf("%d validation error(s)", len(v.Errors))
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "validate a decision from a YAML or JSON file")
	rootCmd.AddCommand(validateCmd)
}
