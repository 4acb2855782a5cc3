// Package archive keeps a SQLite history of simulated matches and trial batches.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/simulation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulations (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	balls      INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	policy     TEXT NOT NULL,
	runs1      INTEGER NOT NULL,
	wickets1   INTEGER NOT NULL,
	runs2      INTEGER NOT NULL,
	wickets2   INTEGER NOT NULL,
	balls1     INTEGER NOT NULL,
	balls2     INTEGER NOT NULL,
	winner     TEXT NOT NULL,
	chased     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_simulations_created ON simulations(created_at);

CREATE TABLE IF NOT EXISTS trial_runs (
	id           TEXT PRIMARY KEY,
	created_at   INTEGER NOT NULL,
	trials       INTEGER NOT NULL,
	balls        INTEGER NOT NULL,
	seed         INTEGER NOT NULL,
	workers      INTEGER NOT NULL,
	policy       TEXT NOT NULL,
	first_wins   INTEGER NOT NULL,
	second_wins  INTEGER NOT NULL,
	ties         INTEGER NOT NULL,
	chases       INTEGER NOT NULL,
	median_runs1 REAL NOT NULL,
	median_runs2 REAL NOT NULL,
	p85_runs1    INTEGER NOT NULL,
	p85_runs2    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trial_runs_created ON trial_runs(created_at);
`

// RunMeta describes the engine settings a simulation ran with.
type RunMeta struct {
	Balls  int
	Seed   int64
	Policy simulation.WicketPolicy
}

// StoredResult is one archived simulated match.
type StoredResult struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Balls     int               `json:"balls"`
	Seed      int64             `json:"seed"`
	Policy    string            `json:"policy"`
	Winner    string            `json:"winner"`
	Result    simulation.Result `json:"result"`
}

// StoredSummary is one archived batch of trials.
type StoredSummary struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Policy    string             `json:"policy"`
	Summary   simulation.Summary `json:"summary"`
}

// Store persists simulation history in SQLite.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the archive at path. ":memory:" gives a private in-memory archive.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: archive path is required", cricket.ErrInvalidInput)
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("Simulation archive opened")
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResult archives one simulated match and returns its id.
func (s *Store) SaveResult(ctx context.Context, res simulation.Result, meta RunMeta) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO simulations (
		   id, created_at, balls, seed, policy,
		   runs1, wickets1, runs2, wickets2, balls1, balls2, winner, chased
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, toMillis(s.now()), meta.Balls, meta.Seed, string(meta.Policy),
		res.Runs1, res.Wickets1, res.Runs2, res.Wickets2, res.Balls1, res.Balls2,
		res.Winner(), boolToInt(res.Chased),
	)
	if err != nil {
		return "", fmt.Errorf("insert simulation: %w", err)
	}

	log.Debug().Str("id", id).Str("score", res.String()).Msg("Simulation archived")
	return id, nil
}

// SaveSummary archives a batch of trials and returns its id.
func (s *Store) SaveSummary(ctx context.Context, sum simulation.Summary, policy simulation.WicketPolicy) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trial_runs (
		   id, created_at, trials, balls, seed, workers, policy,
		   first_wins, second_wins, ties, chases,
		   median_runs1, median_runs2, p85_runs1, p85_runs2
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, toMillis(s.now()), sum.Trials, sum.Balls, sum.Seed, sum.Workers, string(policy),
		sum.FirstWins, sum.SecondWins, sum.Ties, sum.Chases,
		sum.MedianRuns1, sum.MedianRuns2, sum.P85Runs1, sum.P85Runs2,
	)
	if err != nil {
		return "", fmt.Errorf("insert trial run: %w", err)
	}

	log.Debug().Str("id", id).Int("trials", sum.Trials).Msg("Trial summary archived")
	return id, nil
}

// RecentResults returns up to limit archived matches, newest first.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]StoredResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", cricket.ErrInvalidInput, limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, balls, seed, policy,
		        runs1, wickets1, runs2, wickets2, balls1, balls2, winner, chased
		   FROM simulations
		  ORDER BY created_at DESC, rowid DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query simulations: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var (
			r       StoredResult
			created int64
			chased  int
		)
		if err := rows.Scan(&r.ID, &created, &r.Balls, &r.Seed, &r.Policy,
			&r.Result.Runs1, &r.Result.Wickets1, &r.Result.Runs2, &r.Result.Wickets2,
			&r.Result.Balls1, &r.Result.Balls2, &r.Winner, &chased); err != nil {
			return nil, fmt.Errorf("scan simulation: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		r.Result.Chased = chased != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate simulations: %w", err)
	}
	return out, nil
}

// RecentSummaries returns up to limit archived trial batches, newest first.
func (s *Store) RecentSummaries(ctx context.Context, limit int) ([]StoredSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", cricket.ErrInvalidInput, limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, trials, balls, seed, workers, policy,
		        first_wins, second_wins, ties, chases,
		        median_runs1, median_runs2, p85_runs1, p85_runs2
		   FROM trial_runs
		  ORDER BY created_at DESC, rowid DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trial runs: %w", err)
	}
	defer rows.Close()

	var out []StoredSummary
	for rows.Next() {
		var (
			r       StoredSummary
			created int64
		)
		sum := &r.Summary
		if err := rows.Scan(&r.ID, &created, &sum.Trials, &sum.Balls, &sum.Seed, &sum.Workers, &r.Policy,
			&sum.FirstWins, &sum.SecondWins, &sum.Ties, &sum.Chases,
			&sum.MedianRuns1, &sum.MedianRuns2, &sum.P85Runs1, &sum.P85Runs2); err != nil {
			return nil, fmt.Errorf("scan trial run: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		if sum.Trials > 0 {
			sum.SecondWinShare = float64(sum.SecondWins) / float64(sum.Trials)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trial runs: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
