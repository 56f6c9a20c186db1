package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/gridpath/internal/layout"
)

// SaveLayout inserts or replaces a layout. The rows are validated first.
func (s *Store) SaveLayout(l layout.Layout) error {
	if l.ID == "" {
		return fmt.Errorf("storage: cannot save layout: %w: missing id", layout.ErrMalformed)
	}
	if _, err := layout.Decode(l.Rows); err != nil {
		return fmt.Errorf("storage: cannot save layout %q: %w", l.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO layouts (id, name, description, cells, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   cells = excluded.cells,
		   updated_at = CURRENT_TIMESTAMP`,
		l.ID, l.Name, l.Description, strings.Join(l.Rows, "\n"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save layout: %w", err)
	}
	return nil
}

// LoadLayout retrieves a saved layout by ID.
func (s *Store) LoadLayout(id string) (layout.Layout, error) {
	var l layout.Layout
	var rows string
	err := s.db.QueryRow(
		"SELECT id, name, description, cells FROM layouts WHERE id = ?", id,
	).Scan(&l.ID, &l.Name, &l.Description, &rows)

	if errors.Is(err, sql.ErrNoRows) {
		return layout.Layout{}, fmt.Errorf("%w: layout %q", ErrNotFound, id)
	}
	if err != nil {
		return layout.Layout{}, fmt.Errorf("storage: cannot query layout: %w", err)
	}

	l.Rows = strings.Split(rows, "\n")
	return l, nil
}

// ListLayouts retrieves all saved layouts sorted by ID.
func (s *Store) ListLayouts() ([]layout.Layout, error) {
	rows, err := s.db.Query("SELECT id, name, description, cells FROM layouts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var layouts []layout.Layout
	for rows.Next() {
		var l layout.Layout
		var text string
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &text); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		l.Rows = strings.Split(text, "\n")
		layouts = append(layouts, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return layouts, nil
}

// DeleteLayout removes a saved layout.
func (s *Store) DeleteLayout(id string) error {
	res, err := s.db.Exec("DELETE FROM layouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: layout %q", ErrNotFound, id)
	}
	return nil
}
