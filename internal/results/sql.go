package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/specialistvlad/sweepgrid/internal/model"
	_ "modernc.org/sqlite"
)

// ErrNoDSN is returned by OpenSQL when the DSN is empty.
var ErrNoDSN = errors.New("results database DSN is required")

type dialect struct {
	driver string
	// placeholder returns the bind marker for the n-th (1-based) argument.
	placeholder func(n int) string
}

var (
	sqliteDialect   = dialect{driver: "sqlite", placeholder: func(int) string { return "?" }}
	postgresDialect = dialect{driver: "pgx", placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}
)

const createTable = `CREATE TABLE IF NOT EXISTS variant_results (
	run_id          TEXT NOT NULL,
	project_id      TEXT NOT NULL,
	project_name    TEXT NOT NULL,
	technology      TEXT NOT NULL,
	scenario        TEXT NOT NULL,
	combination     TEXT NOT NULL,
	development_fee DOUBLE PRECISION,
	failure_reason  TEXT NOT NULL,
	results         TEXT
)`

var columns = []string{
	"run_id", "project_id", "project_name", "technology", "scenario",
	"combination", "development_fee", "failure_reason", "results",
}

// SQLStore appends variant results to a variant_results table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	runID   string
	insert  string
}

// parseDSN picks the driver from the DSN scheme. postgres:// and
// postgresql:// select pgx, sqlite:// or a bare path select sqlite.
func parseDSN(dsn string) (dialect, string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect, dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDialect, strings.TrimPrefix(dsn, "sqlite://")
	default:
		return sqliteDialect, dsn
	}
}

// OpenSQL connects to dsn and creates the table when missing. Rows written
// through the store are tagged with runID.
func OpenSQL(ctx context.Context, dsn, runID string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNoDSN
	}
	d, source := parseDSN(dsn)
	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", d.driver, err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}

	marks := make([]string, len(columns))
	for i := range marks {
		marks[i] = d.placeholder(i + 1)
	}
	insert := fmt.Sprintf("INSERT INTO variant_results (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(marks, ", "))

	return &SQLStore{db: db, dialect: d, runID: runID, insert: insert}, nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes results in a single transaction.
func (s *SQLStore) Append(ctx context.Context, results []model.VariantResult) (err error) {
	if len(results) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		args, err := s.row(r)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert result for project '%s': %w", r.ProjectID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

func (s *SQLStore) row(r model.VariantResult) ([]any, error) {
	combination, err := json.Marshal(r.Combination)
	if err != nil {
		return nil, fmt.Errorf("encode combination: %w", err)
	}
	var (
		fee     sql.NullFloat64
		payload sql.NullString
	)
	if r.Results != nil {
		fee = sql.NullFloat64{Float64: r.Results.DevelopmentFee, Valid: true}
		raw, err := json.Marshal(r.Results)
		if err != nil {
			return nil, fmt.Errorf("encode results: %w", err)
		}
		payload = sql.NullString{String: string(raw), Valid: true}
	}
	return []any{
		s.runID, r.ProjectID, r.ProjectName, r.Technology, r.Scenario,
		string(combination), fee, string(r.FailureReason), payload,
	}, nil
}

// Count returns how many rows the store's run has written.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM variant_results WHERE run_id = " + s.dialect.placeholder(1)
	if err := s.db.QueryRowContext(ctx, query, s.runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}
