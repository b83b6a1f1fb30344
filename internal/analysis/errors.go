package analysis

import "github.com/rotisserie/eris"

// Hard pipeline failures. Field-level malformation inside a parseable
// payload is repaired silently and never surfaces as an error; only a
// wholly unusable response escalates, so the orchestrator can fail over.
var (
	// ErrNoJSONFound means the model response contained no JSON object.
	ErrNoJSONFound = eris.New("no JSON found in model response")

	// ErrInvalidJSON means an extracted JSON span failed to parse even
	// after repair.
	ErrInvalidJSON = eris.New("invalid JSON in model response")

	// ErrAnalysisFailed is the terminal failure after both provider tiers
	// are exhausted. Callers revert any optimistic status change.
	ErrAnalysisFailed = eris.New("analysis failed, please try again")

	// ErrValidationFailed marks a refusal to analyze a decision that does
	// not pass Validate. The pipeline is never entered.
	ErrValidationFailed = eris.New("decision failed validation")
)
