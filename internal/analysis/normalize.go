package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/internal/model"
)

var (
	trailingCommaBrace   = regexp.MustCompile(`,\s*}`)
	trailingCommaBracket = regexp.MustCompile(`,\s*]`)
)

// Normalize parses raw model text into a fully-populated result. The text
// is treated as an untrusted, lossy channel: it may be wrapped in prose or
// code fences, carry trailing commas, omit fields, or use wrong types.
//
// A response with no extractable JSON object fails with ErrNoJSONFound; an
// extracted span that will not parse even after repair fails with
// ErrInvalidJSON. Both escalate to the orchestrator's failover path. Every
// smaller defect is repaired in place with neutral defaults, because a
// partially-correct recommendation is more useful than a hard failure.
func Normalize(raw string, form model.DecisionFormData) (*model.AnalysisResult, error) {
	span, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, eris.Wrapf(ErrInvalidJSON, "analysis: parse: %v", err)
	}

	result := coerceResult(obj, form)
	return &result, nil
}

// extractJSON pulls the outermost {...} span from the text and repairs the
// two defects small models produce constantly: trailing commas and stray
// control characters.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", eris.Wrap(ErrNoJSONFound, "analysis: extract")
	}

	// Greedy span from the first { to the last }. A truncated response
	// with no closing brace still reaches the parser, which reports it as
	// invalid JSON rather than missing JSON.
	span := raw[start:]
	if end := strings.LastIndex(raw, "}"); end > start {
		span = raw[start : end+1]
	}
	span = trailingCommaBrace.ReplaceAllString(span, "}")
	span = trailingCommaBracket.ReplaceAllString(span, "]")
	span = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return ' '
		}
		return r
	}, span)

	return span, nil
}

// coerceResult never fails: every missing or mistyped field collapses to a
// neutral default, with the filtered option/criterion lists (same filter
// and positional id scheme as BuildPrompt) as ground truth.
func coerceResult(obj map[string]any, form model.DecisionFormData) model.AnalysisResult {
	options := form.ValidOptions()
	criteria := form.ValidCriteria()

	scores := coerceScores(obj["scores"], options, criteria)

	rec, _ := obj["recommendation"].(map[string]any)
	firstLabel := "Unknown"
	if len(options) > 0 {
		firstLabel = options[0].Label
	}
	recommendation := model.Recommendation{
		OptionID:    coerceString(rec["optionId"], "opt_1"),
		OptionLabel: coerceString(rec["optionLabel"], firstLabel),
		Confidence:  clampFloat(coerceNumber(rec["confidence"], 0.7), 0, 1),
		Summary:     coerceString(rec["summary"], "Analysis completed."),
	}

	// The recommendation must point at an entry in scores.
	if len(scores) > 0 && !referencesScore(recommendation.OptionID, scores) {
		recommendation.OptionID = scores[0].OptionID
		recommendation.OptionLabel = scores[0].OptionLabel
	}

	reasoning, _ := obj["reasoning"].(map[string]any)

	return model.AnalysisResult{
		Recommendation: recommendation,
		Scores:         scores,
		Reasoning: model.Reasoning{
			Decomposition: coerceString(reasoning["decomposition"], "Decision analyzed based on provided criteria."),
			Assumptions:   coerceStringSlice(reasoning["assumptions"], "Based on provided information"),
			Tradeoffs:     coerceStringSlice(reasoning["tradeoffs"], "Each option has unique advantages"),
			Risks:         coerceStringSlice(reasoning["risks"], "Results depend on input accuracy"),
			Sensitivity:   coerceString(reasoning["sensitivity"], "Recommendation may change if weights are adjusted."),
		},
	}
}

func coerceScores(v any, options []model.Option, criteria []model.Criterion) []model.OptionScore {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return neutralScores(options, criteria)
	}

	// Exactly one entry per evaluated option: extras are dropped, missing
	// tails are backfilled with neutral entries.
	if len(raw) > len(options) {
		raw = raw[:len(options)]
	}

	out := make([]model.OptionScore, 0, len(options))
	for i, entry := range raw {
		m, _ := entry.(map[string]any)
		label := fmt.Sprintf("Option %d", i+1)
		if i < len(options) {
			label = options[i].Label
		}
		out = append(out, model.OptionScore{
			OptionID:       coerceString(m["optionId"], fmt.Sprintf("opt_%d", i+1)),
			OptionLabel:    coerceString(m["optionLabel"], label),
			TotalScore:     coerceNumber(m["totalScore"], 50),
			CriteriaScores: coerceCriteriaScores(m["criteriaScores"], criteria),
		})
	}
	for i := len(out); i < len(options); i++ {
		out = append(out, neutralScore(options[i], i, criteria))
	}

	return out
}

func coerceCriteriaScores(v any, criteria []model.Criterion) []model.CriterionScore {
	raw, ok := v.([]any)
	if !ok {
		return neutralCriteriaScores(criteria)
	}

	if len(raw) > len(criteria) {
		raw = raw[:len(criteria)]
	}

	out := make([]model.CriterionScore, 0, len(criteria))
	for j, entry := range raw {
		m, _ := entry.(map[string]any)
		name := fmt.Sprintf("Criterion %d", j+1)
		if j < len(criteria) {
			name = criteria[j].Name
		}
		out = append(out, model.CriterionScore{
			CriterionID:   coerceString(m["criterionId"], fmt.Sprintf("crit_%d", j+1)),
			CriterionName: coerceString(m["criterionName"], name),
			Score:         clampScore(coerceNumber(m["score"], 5)),
		})
	}
	for j := len(out); j < len(criteria); j++ {
		out = append(out, model.CriterionScore{
			CriterionID:   fmt.Sprintf("crit_%d", j+1),
			CriterionName: criteria[j].Name,
			Score:         5,
		})
	}

	return out
}

func neutralScores(options []model.Option, criteria []model.Criterion) []model.OptionScore {
	out := make([]model.OptionScore, 0, len(options))
	for i, opt := range options {
		out = append(out, neutralScore(opt, i, criteria))
	}
	return out
}

func neutralScore(opt model.Option, i int, criteria []model.Criterion) model.OptionScore {
	return model.OptionScore{
		OptionID:       fmt.Sprintf("opt_%d", i+1),
		OptionLabel:    opt.Label,
		TotalScore:     50,
		CriteriaScores: neutralCriteriaScores(criteria),
	}
}

func neutralCriteriaScores(criteria []model.Criterion) []model.CriterionScore {
	out := make([]model.CriterionScore, 0, len(criteria))
	for j, c := range criteria {
		out = append(out, model.CriterionScore{
			CriterionID:   fmt.Sprintf("crit_%d", j+1),
			CriterionName: c.Name,
			Score:         5,
		})
	}
	return out
}

func referencesScore(optionID string, scores []model.OptionScore) bool {
	for _, s := range scores {
		if s.OptionID == optionID {
			return true
		}
	}
	return false
}

// coerceString accepts strings, numbers, and bools; anything else (or an
// empty string) yields the fallback.
func coerceString(v any, fallback string) string {
	switch s := v.(type) {
	case string:
		if s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return fallback
}

// coerceNumber accepts numbers and numeric strings. Zero is treated as
// absent, matching the loose-truthiness contract the rest of the coercion
// pass follows.
func coerceNumber(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		if n != 0 {
			return n
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && f != 0 {
			return f
		}
	case bool:
		if n {
			return 1
		}
	}
	return def
}

func coerceStringSlice(v any, fallback string) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{fallback}
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		out = append(out, coerceString(el, fmt.Sprintf("%v", el)))
	}
	return out
}

func clampScore(n float64) int {
	score := int(n + 0.5)
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func clampFloat(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
