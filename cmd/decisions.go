package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/decision-cli/internal/model"
	"github.com/sells-group/decision-cli/internal/store"
)

var (
	newTemplate string
	newTitle    string
	newFile     string
	listStatus  string
	listLimit   int
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Manage stored decisions",
}

var decisionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a decision from a template or a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var form model.DecisionFormData
		switch {
		case newFile != "":
			f, err := loadFormFile(newFile)
			if err != nil {
				return err
			}
			form = *f
		case newTemplate != "":
			tmpl, ok := model.TemplateByID(newTemplate)
			if !ok {
				return eris.Errorf("no template %q, run 'decision-cli templates' to list", newTemplate)
			}
			form = tmpl.Instantiate()
		default:
			return eris.New("--template or --file is required")
		}

		if newTitle != "" {
			form.Title = newTitle
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := st.CreateDecision(ctx, form)
		if err != nil {
			return err
		}

		fmt.Println(d.ID)
		return nil
	},
}

var decisionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		decisions, err := st.ListDecisions(ctx, store.DecisionFilter{
			Status: model.DecisionStatus(listStatus),
			Limit:  listLimit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tOPTIONS\tCRITERIA\tUPDATED")
		for _, d := range decisions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				d.ID, d.Title, d.Status, len(d.Options), len(d.Criteria),
				d.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var decisionsShowCmd = &cobra.Command{
	Use:   "show <decision-id>",
	Short: "Print a decision as JSON",
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

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	},
}

var decisionsDeleteCmd = &cobra.Command{
	Use:   "delete <decision-id>",
	Short: "Delete a decision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.DeleteDecision(ctx, args[0])
	},
}

var decisionsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled sample decisions into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		for _, sample := range model.SampleDecisions() {
			d, err := st.CreateDecision(ctx, sample.DecisionFormData)
			if err != nil {
				return err
			}
			if sample.Result != nil {
				if err := st.SaveResult(ctx, d.ID, sample.Result); err != nil {
					return err
				}
			}
			zap.L().Info("seeded decision", zap.String("id", d.ID), zap.String("title", d.Title))
		}
		return nil
	},
}

func init() {
	decisionsNewCmd.Flags().StringVar(&newTemplate, "template", "", "template id to instantiate")
	decisionsNewCmd.Flags().StringVar(&newTitle, "title", "", "override the decision title")
	decisionsNewCmd.Flags().StringVar(&newFile, "file", "", "create from a YAML or JSON decision file")
	decisionsListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (draft, analyzing, done, archived)")
	decisionsListCmd.Flags().IntVar(&listLimit, "limit", 0, "max decisions to list")

	decisionsCmd.AddCommand(decisionsNewCmd, decisionsListCmd, decisionsShowCmd, decisionsDeleteCmd, decisionsSeedCmd)
	rootCmd.AddCommand(decisionsCmd)
}
