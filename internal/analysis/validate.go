package analysis

import (
	"strings"

	"github.com/sells-group/decision-cli/internal/model"
)

// Validation is the outcome of a pre-flight check. Every rule is checked
// independently so one call surfaces all violations at once.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks that a decision has the minimum shape required for
// analysis: a non-empty title, at least two options with non-empty labels,
// and at least one criterion with a non-empty name. Callers must refuse to
// start analysis when Valid is false.
func Validate(form model.DecisionFormData) Validation {
	var errs []string

	if strings.TrimSpace(form.Title) == "" {
		errs = append(errs, "Decision title is required")
	}
	if len(form.ValidOptions()) < 2 {
		errs = append(errs, "At least 2 options are required")
	}
	if len(form.ValidCriteria()) < 1 {
		errs = append(errs, "At least 1 criterion is required")
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
