package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/internal/config"
	"github.com/sells-group/decision-cli/internal/model"
)

// ErrNotFound is returned when no decision matches the requested id.
var ErrNotFound = eris.New("decision not found")

// DecisionFilter specifies criteria for listing decisions.
type DecisionFilter struct {
	Status model.DecisionStatus `json:"status,omitempty"`
	Limit  int                  `json:"limit,omitempty"`
	Offset int                  `json:"offset,omitempty"`
}

// Store defines the persistence interface for decisions. Analysis results
// are replaced wholesale on re-analysis, never merged; status transitions
// are driven by callers, not by the analysis pipeline.
type Store interface {
	CreateDecision(ctx context.Context, form model.DecisionFormData) (*model.Decision, error)
	GetDecision(ctx context.Context, id string) (*model.Decision, error)
	ListDecisions(ctx context.Context, filter DecisionFilter) ([]model.Decision, error)
	UpdateDecision(ctx context.Context, id string, form model.DecisionFormData) error
	UpdateStatus(ctx context.Context, id string, status model.DecisionStatus) error
	SaveResult(ctx context.Context, id string, result *model.AnalysisResult) error
	DeleteDecision(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the store named by config.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DSN)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
