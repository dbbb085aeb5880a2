package state

import (
	"time"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/report"
)

// Store records completed checks.
type Store interface {
	SaveRun(r *report.Report) error
	ListRuns(url string, limit int) ([]RunRecord, error)
	GetRunGroups(runID string) ([]GroupRecord, error)
	Close() error
}

// RunRecord is one stored check.
type RunRecord struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Status      int       `json:"status"`
	CheckedAt   time.Time `json:"checked_at"`
	TotalIssues int       `json:"total_issues"`
	LevelA      int       `json:"level_a"`
	LevelAA     int       `json:"level_aa"`
	LevelAAA    int       `json:"level_aaa"`
	Failures    int       `json:"failures"`
}

// GroupRecord is one issue group of a stored check.
type GroupRecord struct {
	Name      string     `json:"name"`
	Criterion string     `json:"criterion"`
	Level     core.Level `json:"level"`
	Count     int        `json:"count"`
}

var _ Store = (*SQLiteStore)(nil)
