package state

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/report"
)

// SaveRun stores r and its issue groups in one transaction.
func (s *SQLiteStore) SaveRun(r *report.Report) (err error) {
	if s.db == nil {
		return ErrNotOpen
	}

	s.logger.Debug("saving run", slog.String("id", r.ID), slog.String("url", r.URL))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.Exec(
		`INSERT INTO runs (id, url, title, status, checked_at, total_issues, level_a, level_aa, level_aaa, failures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.URL, r.Title, r.Status, r.Timestamp.UTC(), r.TotalIssues,
		r.Summary.ByLevel[core.LevelA], r.Summary.ByLevel[core.LevelAA], r.Summary.ByLevel[core.LevelAAA],
		len(r.Failures),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, g := range r.Issues {
		_, err = tx.Exec(
			`INSERT INTO issue_groups (run_id, position, name, criterion, level, count) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i, g.Name, g.Criterion, string(g.Level), g.Count,
		)
		if err != nil {
			return fmt.Errorf("failed to insert issue group: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns stored runs, newest first. An empty url lists runs for
// every page; a non-positive limit returns all of them.
func (s *SQLiteStore) ListRuns(url string, limit int) ([]RunRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT id, url, title, status, checked_at, total_issues, level_a, level_aa, level_aaa, failures
		FROM runs`
	args := []any{}
	if url != "" {
		query += ` WHERE url = ?`
		args = append(args, url)
	}
	query += ` ORDER BY checked_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.URL, &r.Title, &r.Status, &r.CheckedAt, &r.TotalIssues,
			&r.LevelA, &r.LevelAA, &r.LevelAAA, &r.Failures); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRunGroups returns the issue groups of a run in report order.
func (s *SQLiteStore) GetRunGroups(runID string) ([]GroupRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.Query(
		`SELECT name, criterion, level, count FROM issue_groups WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []GroupRecord
	for rows.Next() {
		var g GroupRecord
		var level string
		if err := rows.Scan(&g.Name, &g.Criterion, &level, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan issue group: %w", err)
		}
		g.Level = core.Level(level)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get issue groups: %w", err)
	}
	return groups, nil
}
