package analysis

import (
	"fmt"
	"strings"

	"github.com/sells-group/decision-cli/internal/model"
)

// SystemPrompt pins the model to raw-JSON output. It is identical for
// every provider tier.
const SystemPrompt = `You are an expert decision analyst. Respond with ONLY valid JSON, no markdown code blocks, no explanations. Start with { and end with }`

// outputSchema documents the exact response shape the normalizer expects.
const outputSchema = `{
  "recommendation": {
    "optionId": "opt_X",
    "optionLabel": "name of recommended option",
    "confidence": 0.85,
    "summary": "2-3 sentence explanation"
  },
  "scores": [
    {
      "optionId": "opt_1",
      "optionLabel": "option name",
      "totalScore": 75,
      "criteriaScores": [
        {"criterionId": "crit_1", "criterionName": "criterion", "score": 8}
      ]
    }
  ],
  "reasoning": {
    "decomposition": "How you analyzed this",
    "assumptions": ["assumption 1"],
    "tradeoffs": ["tradeoff 1"],
    "risks": ["risk 1"],
    "sensitivity": "How weight changes affect outcome"
  }
}`

// BuildPrompt renders a decision as a deterministic analysis task. Options
// and criteria with blank labels/names are excluded, and the survivors get
// positional opt_N / crit_N ids recomputed on every call. The model mangles
// long opaque ids in transit; short positional tokens survive the round
// trip, and the normalizer maps them back by position.
func BuildPrompt(form model.DecisionFormData) string {
	options := form.ValidOptions()
	criteria := form.ValidCriteria()

	var b strings.Builder

	fmt.Fprintf(&b, "DECISION: %s\n\n", form.Title)

	if form.Context != "" {
		fmt.Fprintf(&b, "CONTEXT:\n%s\n\n", form.Context)
	}

	fmt.Fprintf(&b, "OPTIONS (%d choices to evaluate):\n", len(options))
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %q (id: \"opt_%d\")", i+1, opt.Label, i+1)
		if opt.Notes != "" {
			fmt.Fprintf(&b, "\n   Notes: %s", opt.Notes)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString("EVALUATION CRITERIA (importance-weighted):\n")
	for i, c := range criteria {
		fmt.Fprintf(&b, "%d. %q (id: \"crit_%d\") [Weight: %d/10]", i+1, c.Name, i+1, c.Weight)
		if c.Description != "" {
			fmt.Fprintf(&b, "\n   -> %s", c.Description)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if len(form.Constraints) > 0 {
		b.WriteString("CONSTRAINTS:\n")
		for _, c := range form.Constraints {
			fmt.Fprintf(&b, "- %s: %s [Priority: %d/5]\n", strings.ToUpper(string(c.Type)), c.Value, c.Priority)
		}
	} else {
		b.WriteString("CONSTRAINTS: None specified\n")
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "TASK: Analyze all %d options against the %d criteria.\n", len(options), len(criteria))
	b.WriteString("Score each option 1-10 on each criterion, calculate weighted totals, and recommend the best choice.\n\n")

	b.WriteString("Respond with ONLY this JSON structure (no other text, no markdown):\n")
	b.WriteString(outputSchema)

	return b.String()
}
