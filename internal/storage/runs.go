package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Run is one recorded search.
type Run struct {
	ID        string // UUID
	LayoutID  string
	Width     int
	Height    int
	Spawn     pathfind.Position
	Target    pathfind.Position
	Outcome   string // pathfind.Outcome string form
	Steps     int
	Cost      float64
	Expanded  int
	CreatedAt time.Time
}

// Found reports whether the run found a path.
func (r Run) Found() bool {
	return r.Outcome == pathfind.Found.String()
}

// NewRun builds a run record from a search result.
func NewRun(layoutID string, width, height int, spawn, target pathfind.Position, res pathfind.Result) Run {
	return Run{
		LayoutID: layoutID,
		Width:    width,
		Height:   height,
		Spawn:    spawn,
		Target:   target,
		Outcome:  res.Outcome.String(),
		Steps:    res.Steps(),
		Cost:     res.Cost,
		Expanded: res.Expanded,
	}
}

const runColumns = `run_id, layout_id, width, height, spawn_x, spawn_y, target_x, target_y,
		        outcome, steps, cost, expanded, created_at`

// SaveRun records a search run and returns its ID.
// A run without an ID is assigned a new UUID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, layout_id, width, height, spawn_x, spawn_y, target_x, target_y, outcome, steps, cost, expanded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.LayoutID,
		r.Width,
		r.Height,
		r.Spawn.X,
		r.Spawn.Y,
		r.Target.X,
		r.Target.Y,
		r.Outcome,
		r.Steps,
		r.Cost,
		r.Expanded,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.LayoutID,
		&r.Width,
		&r.Height,
		&r.Spawn.X,
		&r.Spawn.Y,
		&r.Target.X,
		&r.Target.Y,
		&r.Outcome,
		&r.Steps,
		&r.Cost,
		&r.Expanded,
		&createdAt,
	)
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty layoutID matches every layout.
func (s *Store) RecentRuns(layoutID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR layout_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		layoutID, layoutID, limit,
	)
}

// AllRuns retrieves every run, oldest first.
func (s *Store) AllRuns() ([]Run, error) {
	return s.queryRuns(`SELECT ` + runColumns + ` FROM runs ORDER BY id`)
}

// BestRun returns the cheapest successful run for a layout.
// Returns ErrNotFound if the layout has no successful runs.
func (s *Store) BestRun(layoutID string) (Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout_id = ? AND outcome = ?
		 ORDER BY cost, expanded, id
		 LIMIT 1`,
		layoutID, pathfind.Found.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: no successful run for %q", ErrNotFound, layoutID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return r, nil
}

// ClearRuns deletes runs for a layout, or every run when layoutID is empty.
func (s *Store) ClearRuns(layoutID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR layout_id = ?", layoutID, layoutID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LayoutStats contains aggregated run statistics for a layout.
type LayoutStats struct {
	LayoutID string
	Runs     int
	Found    int
	BestCost float64 // Zero when no run found a path
	LastRun  time.Time
}

// AllLayoutStats retrieves statistics for every layout that has runs.
func (s *Store) AllLayoutStats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout_id, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN cost END), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY layout_id`,
		pathfind.Found.String(), pathfind.Found.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var st LayoutStats
		var lastRun any
		if err := rows.Scan(&st.LayoutID, &st.Runs, &st.Found, &st.BestCost, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.LayoutID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
