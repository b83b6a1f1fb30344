package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/decision-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS decisions (
	id         TEXT PRIMARY KEY,
	form       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'draft',
	result     TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status);
CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateDecision(ctx context.Context, form model.DecisionFormData) (*model.Decision, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	formJSON, err := json.Marshal(form)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal form")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decisions (id, form, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(formJSON), string(model.StatusDraft), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert decision")
	}

	return &model.Decision{
		ID:               id,
		DecisionFormData: form,
		Status:           model.StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *SQLiteStore) GetDecision(ctx context.Context, id string) (*model.Decision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, form, status, result, created_at, updated_at FROM decisions WHERE id = ?`,
		id,
	)
	return scanDecision(row)
}

func (s *SQLiteStore) ListDecisions(ctx context.Context, filter DecisionFilter) ([]model.Decision, error) {
	query := `SELECT id, form, status, result, created_at, updated_at FROM decisions WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list decisions")
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, eris.Wrap(rows.Err(), "sqlite: list decisions iterate")
}

func (s *SQLiteStore) UpdateDecision(ctx context.Context, id string, form model.DecisionFormData) error {
	formJSON, err := json.Marshal(form)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal form")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE decisions SET form = ?, updated_at = ? WHERE id = ?`,
		string(formJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update decision %s", id)
	}
	return checkRowsAffected(res, "decision", id)
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status model.DecisionStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE decisions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update status %s", id)
	}
	return checkRowsAffected(res, "decision", id)
}

func (s *SQLiteStore) SaveResult(ctx context.Context, id string, result *model.AnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE decisions SET result = ?, status = ?, updated_at = ? WHERE id = ?`,
		string(resultJSON), string(model.StatusDone), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save result %s", id)
	}
	return checkRowsAffected(res, "decision", id)
}

func (s *SQLiteStore) DeleteDecision(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM decisions WHERE id = ?`, id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete decision %s", id)
	}
	return checkRowsAffected(res, "decision", id)
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanDecision(row scannable) (*model.Decision, error) {
	var d model.Decision
	var formJSON string
	var resultJSON sql.NullString

	err := row.Scan(&d.ID, &formJSON, &d.Status, &resultJSON, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "sqlite: get decision")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan decision")
	}

	if err := json.Unmarshal([]byte(formJSON), &d.DecisionFormData); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal form")
	}
	if resultJSON.Valid {
		d.Result = &model.AnalysisResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), d.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
	}
	return &d, nil
}
