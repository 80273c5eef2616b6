// Package store persists analysis reports so runs can be compared over time.
// SQLite keeps the store embeddable: one file per deployment, no server.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/chrisconley/segmint/specs"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const timeLayout = time.RFC3339Nano

// ReportStore persists analysis reports in a SQLite database.
type ReportStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewReportStore opens or creates the report database at path. Use
// ":memory:" for an ephemeral store.
func NewReportStore(path string) (*ReportStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &ReportStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

func (s *ReportStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		reference_date TEXT NOT NULL,
		customer_count INTEGER NOT NULL,
		skipped_rows INTEGER NOT NULL,
		seed INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS profiles (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		cluster INTEGER NOT NULL,
		label TEXT NOT NULL,
		mean_recency_days REAL NOT NULL,
		mean_frequency REAL NOT NULL,
		mean_monetary TEXT NOT NULL,
		mean_tenure_days REAL NOT NULL,
		customer_count INTEGER NOT NULL,
		percentage REAL NOT NULL,
		action TEXT NOT NULL,
		urgency TEXT NOT NULL,
		PRIMARY KEY (run_id, cluster)
	);
	CREATE TABLE IF NOT EXISTS assignments (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		customer_id TEXT NOT NULL,
		cluster INTEGER NOT NULL,
		label TEXT NOT NULL,
		PRIMARY KEY (run_id, customer_id)
	);
	CREATE INDEX IF NOT EXISTS idx_assignments_run ON assignments(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport persists a report as a new run and returns its run ID.
func (s *ReportStore) SaveReport(ctx context.Context, report specs.AnalysisReportSpec) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (generated_at, reference_date, customer_count, skipped_rows, seed)
		VALUES (?, ?, ?, ?, ?)
	`,
		report.GeneratedAt.UTC().Format(timeLayout),
		report.ReferenceDate.UTC().Format(timeLayout),
		report.CustomerCount,
		report.SkippedRows,
		report.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	profileStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO profiles (run_id, cluster, label, mean_recency_days, mean_frequency,
			mean_monetary, mean_tenure_days, customer_count, percentage, action, urgency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing profile statement: %w", err)
	}
	defer profileStmt.Close()

	for _, profile := range report.Profiles {
		_, err = profileStmt.ExecContext(ctx,
			runID,
			profile.Cluster,
			profile.Label,
			profile.MeanRecencyDays,
			profile.MeanFrequency,
			profile.MeanMonetary,
			profile.MeanTenureDays,
			profile.CustomerCount,
			profile.Percentage,
			profile.Recommendation.Action,
			profile.Recommendation.Urgency,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting profile for cluster %d: %w", profile.Cluster, err)
		}
	}

	assignmentStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assignments (run_id, customer_id, cluster, label)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing assignment statement: %w", err)
	}
	defer assignmentStmt.Close()

	for _, customer := range report.Customers {
		_, err = assignmentStmt.ExecContext(ctx,
			runID,
			customer.CustomerID,
			customer.Cluster,
			customer.Label,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting assignment for %s: %w", customer.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// LoadReport reads a persisted run back into a report.
func (s *ReportStore) LoadReport(ctx context.Context, runID int64) (specs.AnalysisReportSpec, error) {
	var (
		report        specs.AnalysisReportSpec
		generatedAt   string
		referenceDate string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT generated_at, reference_date, customer_count, skipped_rows, seed
		FROM runs WHERE id = ?
	`, runID).Scan(&generatedAt, &referenceDate, &report.CustomerCount, &report.SkippedRows, &report.Seed)
	if err == sql.ErrNoRows {
		return specs.AnalysisReportSpec{}, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("reading run %d: %w", runID, err)
	}

	if report.GeneratedAt, err = time.Parse(timeLayout, generatedAt); err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("parsing generated_at: %w", err)
	}
	if report.ReferenceDate, err = time.Parse(timeLayout, referenceDate); err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("parsing reference_date: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cluster, label, mean_recency_days, mean_frequency, mean_monetary,
			mean_tenure_days, customer_count, percentage, action, urgency
		FROM profiles WHERE run_id = ? ORDER BY cluster
	`, runID)
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("reading profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var profile specs.SegmentProfileSpec
		err := rows.Scan(
			&profile.Cluster,
			&profile.Label,
			&profile.MeanRecencyDays,
			&profile.MeanFrequency,
			&profile.MeanMonetary,
			&profile.MeanTenureDays,
			&profile.CustomerCount,
			&profile.Percentage,
			&profile.Recommendation.Action,
			&profile.Recommendation.Urgency,
		)
		if err != nil {
			return specs.AnalysisReportSpec{}, fmt.Errorf("scanning profile: %w", err)
		}
		profile.Recommendation.Label = profile.Label
		report.Profiles = append(report.Profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return specs.AnalysisReportSpec{}, err
	}

	customerRows, err := s.db.QueryContext(ctx, `
		SELECT customer_id, cluster, label
		FROM assignments WHERE run_id = ? ORDER BY customer_id
	`, runID)
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("reading assignments: %w", err)
	}
	defer customerRows.Close()

	for customerRows.Next() {
		var customer specs.CustomerSegmentSpec
		if err := customerRows.Scan(&customer.CustomerID, &customer.Cluster, &customer.Label); err != nil {
			return specs.AnalysisReportSpec{}, fmt.Errorf("scanning assignment: %w", err)
		}
		report.Customers = append(report.Customers, customer)
	}
	if err := customerRows.Err(); err != nil {
		return specs.AnalysisReportSpec{}, err
	}

	return report, nil
}

// RunSummary is one row of the run index.
type RunSummary struct {
	ID            int64
	GeneratedAt   time.Time
	CustomerCount int
}

// ListRuns returns all persisted runs, newest first.
func (s *ReportStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, generated_at, customer_count
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run         RunSummary
			generatedAt string
		)
		if err := rows.Scan(&run.ID, &generatedAt, &run.CustomerCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.GeneratedAt, err = time.Parse(timeLayout, generatedAt); err != nil {
			return nil, fmt.Errorf("parsing generated_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (s *ReportStore) Close() error {
	return s.db.Close()
}
