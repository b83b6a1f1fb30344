package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/decision-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// too, which keeps the driver unit-testable without a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_decision": `INSERT INTO decisions (id, form, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
	"get_decision":    `SELECT id, form, status, result, created_at, updated_at FROM decisions WHERE id = $1`,
	"update_decision": `UPDATE decisions SET form = $1, updated_at = $2 WHERE id = $3`,
	"update_status":   `UPDATE decisions SET status = $1, updated_at = $2 WHERE id = $3`,
	"save_result":     `UPDATE decisions SET result = $1, status = $2, updated_at = $3 WHERE id = $4`,
	"delete_decision": `DELETE FROM decisions WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS decisions (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	form       JSONB NOT NULL,
	status     TEXT NOT NULL DEFAULT 'draft',
	result     JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status);
CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateDecision(ctx context.Context, form model.DecisionFormData) (*model.Decision, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	formJSON, err := json.Marshal(form)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal form")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO decisions (id, form, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, formJSON, string(model.StatusDraft), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert decision")
	}

	return &model.Decision{
		ID:               id,
		DecisionFormData: form,
		Status:           model.StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *PostgresStore) GetDecision(ctx context.Context, id string) (*model.Decision, error) {
	var d model.Decision
	var formJSON []byte
	var resultNull *[]byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, form, status, result, created_at, updated_at FROM decisions WHERE id = $1`,
		id,
	).Scan(&d.ID, &formJSON, &d.Status, &resultNull, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get decision %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get decision %s", id)
	}

	if err := json.Unmarshal(formJSON, &d.DecisionFormData); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal form")
	}
	if resultNull != nil {
		d.Result = &model.AnalysisResult{}
		if err := json.Unmarshal(*resultNull, d.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
	}
	return &d, nil
}

func (s *PostgresStore) ListDecisions(ctx context.Context, filter DecisionFilter) ([]model.Decision, error) {
	query := `SELECT id, form, status, result, created_at, updated_at FROM decisions WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list decisions")
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		var formJSON []byte
		var resultNull *[]byte

		if err := rows.Scan(&d.ID, &formJSON, &d.Status, &resultNull, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan decision")
		}
		if err := json.Unmarshal(formJSON, &d.DecisionFormData); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal form")
		}
		if resultNull != nil {
			d.Result = &model.AnalysisResult{}
			if err := json.Unmarshal(*resultNull, d.Result); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal result")
			}
		}
		decisions = append(decisions, d)
	}
	return decisions, eris.Wrap(rows.Err(), "postgres: list decisions iterate")
}

func (s *PostgresStore) UpdateDecision(ctx context.Context, id string, form model.DecisionFormData) error {
	formJSON, err := json.Marshal(form)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal form")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE decisions SET form = $1, updated_at = $2 WHERE id = $3`,
		formJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update decision %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "decision %s", id)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status model.DecisionStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE decisions SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "decision %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, id string, result *model.AnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE decisions SET result = $1, status = $2, updated_at = $3 WHERE id = $4`,
		resultJSON, string(model.StatusDone), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save result %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "decision %s", id)
	}
	return nil
}

func (s *PostgresStore) DeleteDecision(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM decisions WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete decision %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "decision %s", id)
	}
	return nil
}

