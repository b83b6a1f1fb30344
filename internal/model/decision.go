package model

import (
	"strings"
	"time"
)

// DecisionStatus tracks where a decision sits in its lifecycle.
type DecisionStatus string

const (
	StatusDraft     DecisionStatus = "draft"
	StatusAnalyzing DecisionStatus = "analyzing"
	StatusDone      DecisionStatus = "done"
	StatusArchived  DecisionStatus = "archived"
)

// AllDecisionStatuses returns every valid status value.
func AllDecisionStatuses() []DecisionStatus {
	return []DecisionStatus{StatusDraft, StatusAnalyzing, StatusDone, StatusArchived}
}

// Option is one alternative under consideration. Its ID is assigned at
// creation and never reused; only options with a non-empty trimmed label
// participate in analysis.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Notes string `json:"notes,omitempty"`
}

// Criterion is one evaluation axis with an importance weight in [1,10].
type Criterion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description,omitempty"`
}

// ConstraintType categorizes a constraint.
type ConstraintType string

const (
	ConstraintBudget   ConstraintType = "budget"
	ConstraintTimeline ConstraintType = "timeline"
	ConstraintRisk     ConstraintType = "risk"
	ConstraintOther    ConstraintType = "other"
)

// Constraint is advisory context for the analysis prompt. It has no
// independent validation or scoring role.
type Constraint struct {
	ID       string         `json:"id"`
	Type     ConstraintType `json:"type"`
	Value    string         `json:"value"`
	Priority int            `json:"priority"` // 1-5
}

// DecisionFormData is the analyzable shape of a decision: everything the
// pipeline needs, without storage bookkeeping.
type DecisionFormData struct {
	Title       string       `json:"title"`
	Context     string       `json:"context,omitempty"`
	Options     []Option     `json:"options"`
	Criteria    []Criterion  `json:"criteria"`
	Constraints []Constraint `json:"constraints"`
}

// ValidOptions returns options with a non-empty trimmed label, in order.
func (d DecisionFormData) ValidOptions() []Option {
	var out []Option
	for _, o := range d.Options {
		if strings.TrimSpace(o.Label) != "" {
			out = append(out, o)
		}
	}
	return out
}

// ValidCriteria returns criteria with a non-empty trimmed name, in order.
func (d DecisionFormData) ValidCriteria() []Criterion {
	var out []Criterion
	for _, c := range d.Criteria {
		if strings.TrimSpace(c.Name) != "" {
			out = append(out, c)
		}
	}
	return out
}

// Decision is a stored decision record with lifecycle state and, once
// analyzed, an immutable result.
type Decision struct {
	ID string `json:"id"`
	DecisionFormData
	Status    DecisionStatus  `json:"status"`
	Result    *AnalysisResult `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
