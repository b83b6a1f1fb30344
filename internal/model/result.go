package model

// Recommendation designates the single best option from an analysis run.
type Recommendation struct {
	OptionID    string  `json:"optionId"`
	OptionLabel string  `json:"optionLabel"`
	Confidence  float64 `json:"confidence"` // clamped to [0,1]
	Summary     string  `json:"summary"`
}

// CriterionScore is one option's score on one criterion, an integer in [1,10].
type CriterionScore struct {
	CriterionID   string `json:"criterionId"`
	CriterionName string `json:"criterionName"`
	Score         int    `json:"score"`
}

// OptionScore holds an option's weighted total and per-criterion scores.
type OptionScore struct {
	OptionID       string           `json:"optionId"`
	OptionLabel    string           `json:"optionLabel"`
	TotalScore     float64          `json:"totalScore"`
	CriteriaScores []CriterionScore `json:"criteriaScores"`
}

// Reasoning captures the model's explanation of its analysis.
type Reasoning struct {
	Decomposition string   `json:"decomposition"`
	Assumptions   []string `json:"assumptions"`
	Tradeoffs     []string `json:"tradeoffs"`
	Risks         []string `json:"risks"`
	Sensitivity   string   `json:"sensitivity"`
}

// AnalysisResult is the immutable output of one analysis run. Re-analysis
// replaces it wholesale; what-if exploration derives new score slices and
// never mutates a stored result.
type AnalysisResult struct {
	Recommendation Recommendation `json:"recommendation"`
	Scores         []OptionScore  `json:"scores"`
	Reasoning      Reasoning      `json:"reasoning"`
}
