// Package solve provides the HTTP endpoints that run searches and list
// recorded runs.
package solve

import (
	"time"

	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// Request asks for a search over inline rows or a known layout.
// Exactly one of Rows and LayoutID must be set.
type Request struct {
	Rows     []string `json:"rows"`
	LayoutID string   `json:"layout_id"`
	Width    int      `json:"width"`  // Generated layouts only
	Height   int      `json:"height"` // Generated layouts only
	Seed     int64    `json:"seed"`   // Generated layouts only
}

// Point is a cell position on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPoint(p pathfind.Position) Point {
	return Point{X: p.X, Y: p.Y}
}

// Response is the outcome of one search.
type Response struct {
	RunID    string   `json:"run_id,omitempty"`
	LayoutID string   `json:"layout_id,omitempty"`
	Outcome  string   `json:"outcome"`
	Path     []Point  `json:"path"`
	Cost     float64  `json:"cost"`
	Steps    int      `json:"steps"`
	Expanded int      `json:"expanded"`
	Rows     []string `json:"rows"` // The layout searched
}

// NewResponse converts a search result.
func NewResponse(res pathfind.Result) Response {
	path := make([]Point, 0, len(res.Path))
	for _, p := range res.Path {
		path = append(path, toPoint(p))
	}
	return Response{
		Outcome:  res.Outcome.String(),
		Path:     path,
		Cost:     res.Cost,
		Steps:    res.Steps(),
		Expanded: res.Expanded,
	}
}

// RunResponse is a recorded run on the wire.
type RunResponse struct {
	ID        string    `json:"id"`
	LayoutID  string    `json:"layout_id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Spawn     Point     `json:"spawn"`
	Target    Point     `json:"target"`
	Outcome   string    `json:"outcome"`
	Steps     int       `json:"steps"`
	Cost      float64   `json:"cost"`
	Expanded  int       `json:"expanded"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRunResponse converts a stored run.
func NewRunResponse(r storage.Run) RunResponse {
	return RunResponse{
		ID:        r.ID,
		LayoutID:  r.LayoutID,
		Width:     r.Width,
		Height:    r.Height,
		Spawn:     toPoint(r.Spawn),
		Target:    toPoint(r.Target),
		Outcome:   r.Outcome,
		Steps:     r.Steps,
		Cost:      r.Cost,
		Expanded:  r.Expanded,
		CreatedAt: r.CreatedAt,
	}
}
