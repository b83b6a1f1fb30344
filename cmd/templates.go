package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/decision-cli/internal/model"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [template-id]",
	Short: "List built-in decision templates, or show one as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			tmpl, ok := model.TemplateByID(args[0])
			if !ok {
				return eris.Errorf("no template %q", args[0])
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tmpl)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tOPTIONS\tCRITERIA")
		for _, t := range model.Templates() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
				t.ID, t.Name, t.Category, len(t.Form.Options), len(t.Form.Criteria))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
