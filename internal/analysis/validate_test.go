package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/decision-cli/internal/model"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       model.DecisionFormData
		wantValid  bool
		wantErrors []string
	}{
		{
			name: "complete_decision",
			form: model.DecisionFormData{
				Title: "Choose a database",
				Options: []model.Option{
					{ID: "a", Label: "PostgreSQL"},
					{ID: "b", Label: "SQLite"},
				},
				Criteria: []model.Criterion{
					{ID: "c1", Name: "Performance", Weight: 8},
				},
			},
			wantValid: true,
		},
		{
			name: "everything_missing_reports_all_violations",
			form: model.DecisionFormData{
				Title:   "",
				Options: []model.Option{{ID: "a", Label: "Only one"}},
			},
			wantErrors: []string{
				"Decision title is required",
				"At least 2 options are required",
				"At least 1 criterion is required",
			},
		},
		{
			name: "whitespace_title_and_labels_do_not_count",
			form: model.DecisionFormData{
				Title: "   ",
				Options: []model.Option{
					{ID: "a", Label: "Real"},
					{ID: "b", Label: "  \t"},
				},
				Criteria: []model.Criterion{
					{ID: "c1", Name: " ", Weight: 5},
				},
			},
			wantErrors: []string{
				"Decision title is required",
				"At least 2 options are required",
				"At least 1 criterion is required",
			},
		},
		{
			name: "one_option_short",
			form: model.DecisionFormData{
				Title:    "Pick one",
				Options:  []model.Option{{ID: "a", Label: "Solo"}},
				Criteria: []model.Criterion{{ID: "c1", Name: "Cost", Weight: 5}},
			},
			wantErrors: []string{"At least 2 options are required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Validate(tt.form)
			assert.Equal(t, tt.wantValid, v.Valid)
			assert.Equal(t, tt.wantErrors, v.Errors)
		})
	}
}
