// Package history records scoring runs and their results in a SQL database.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/parquet"
	"github.com/huangsam/rvss/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for score history.
const (
	runsTable   = "rvss_runs"
	scoresTable = "rvss_scores"
)

// Store implements the HistoryStore interface.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend

	mu   sync.Mutex
	seqs map[string]int32 // next sequence number per run
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// NewStore creates a new history store with the specified backend and
// migrates its schema to the latest version.
func NewStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &Store{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := migrateLatest(db, backend, connStr); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &Store{
		db:      db,
		backend: backend,
		seqs:    make(map[string]int32),
	}, nil
}

// openDB opens a database handle for backend without connecting.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MySQL connection string: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		// DATETIME columns are scanned into time.Time
		cfg.ParseTime = true
		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=... password=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// migrateLatest brings the history tables to the latest version. SQLite runs
// on db itself so in-memory databases see the tables; server backends use a
// dedicated connection that is closed afterwards.
func migrateLatest(db *sql.DB, backend schema.DatabaseBackend, connStr string) error {
	if backend != schema.SQLiteBackend {
		return migrateTo(backend, connStr, -1, io.Discard)
	}
	m, err := newMigrate(db, backend)
	if err != nil {
		return err
	}
	return runMigration(m, -1, io.Discard)
}

// disabled reports whether the store records nothing.
func (s *Store) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BeginRun creates a new run and returns its unique ID.
func (s *Store) BeginRun(startTime time.Time, command string, configParams map[string]any) (string, error) {
	if s.disabled() {
		return "", nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate run id: %w", err)
	}
	runID := id.String()

	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (run_id, command, start_time, config_params) VALUES (?, ?, ?, ?)`, runsTable))
	if _, err := s.db.Exec(query, runID, command, formatTime(startTime, s.backend), string(configJSON)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	s.mu.Lock()
	s.seqs[runID] = 0
	s.mu.Unlock()
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *Store) EndRun(runID string, endTime time.Time, totalVectors int) error {
	if s.disabled() {
		return nil
	}

	query := s.rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, runsTable))
	startTime, err := scanTime(s.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	update := s.rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, duration_ms = ?, total_vectors = ? WHERE run_id = ?`, runsTable))
	if _, err := s.db.Exec(update, formatTime(endTime, s.backend), durationMs, totalVectors, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	s.mu.Lock()
	delete(s.seqs, runID)
	s.mu.Unlock()
	return nil
}

// RecordScore stores a scored vector for a run. Results carrying an error are skipped.
func (s *Store) RecordScore(runID string, result schema.ScoreResult) error {
	if s.disabled() || result.Error != "" {
		return nil
	}

	metrics, custom, err := parquet.EncodeResult(result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	seq := s.seqs[runID]
	s.seqs[runID] = seq + 1
	s.mu.Unlock()

	query := s.rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, seq, recorded_at, system_name, vector, metrics,
		                base, temporal, environmental, severity, custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, scoresTable))
	_, err = s.db.Exec(query,
		runID, seq, formatTime(time.Now(), s.backend), result.System, result.Vector, metrics,
		result.Base, result.Temporal, result.Environmental, string(result.Severity), custom,
	)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:      string(s.backend),
		Connected:    s.db != nil,
		SystemCounts: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", scoresTable)).Scan(&status.TotalScores); err != nil {
		return status, fmt.Errorf("failed to get total scores: %w", err)
	}

	if status.TotalRuns > 0 {
		// UUIDv7 ids sort by creation time
		row := s.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		var lastRunID string
		var lastRunTime any
		if err := row.Scan(&lastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := parseTime(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunID = lastRunID
		status.LastRunTime = t

		row = s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable))
		if status.OldestRunTime, err = scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	rows, err := s.db.Query(fmt.Sprintf("SELECT system_name, COUNT(*) FROM %s GROUP BY system_name", scoresTable))
	if err != nil {
		return status, fmt.Errorf("failed to count scores per system: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return status, fmt.Errorf("failed to scan system count: %w", err)
		}
		status.SystemCounts[name] = count
	}
	return status, rows.Err()
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (s *Store) GetAllRuns() ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, command, start_time, end_time, duration_ms, total_vectors, config_params FROM %s ORDER BY run_id", runsTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startTime, endTime any
		var duration sql.NullInt64
		var total sql.NullInt32
		if err := rows.Scan(&record.RunID, &record.Command, &startTime, &endTime, &duration, &total, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.StartTime, err = parseTime(startTime); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endTime != nil {
			t, err := parseTime(endTime)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &t
		}
		if duration.Valid {
			record.DurationMs = &duration.Int64
		}
		if total.Valid {
			record.TotalVectors = &total.Int32
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllScores retrieves all recorded scores, ordered by run and sequence.
func (s *Store) GetAllScores() ([]schema.ScoreRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, seq, recorded_at, system_name, vector, metrics,
    base, temporal, environmental, severity, custom
    FROM %s ORDER BY run_id, seq`, scoresTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScoreRecord
	for rows.Next() {
		var record schema.ScoreRecord
		var recordedAt any
		if err := rows.Scan(&record.RunID, &record.Seq, &recordedAt, &record.System, &record.Vector, &record.Metrics,
			&record.Base, &record.Temporal, &record.Environmental, &record.Severity, &record.Custom); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		if record.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scores: %w", err)
	}
	return results, nil
}

// Clear removes all runs and scores.
func (s *Store) Clear() error {
	if s.disabled() {
		return nil
	}
	for _, table := range []string{scoresTable, runsTable} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	s.mu.Lock()
	clear(s.seqs)
	s.mu.Unlock()
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

func scanTime(row *sql.Row) (time.Time, error) {
	var v any
	if err := row.Scan(&v); err != nil {
		return time.Time{}, err
	}
	return parseTime(v)
}

// parseTime handles the different time storage formats per backend.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}
