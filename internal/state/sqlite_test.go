package state

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/report"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testReport(id, url string, at time.Time, groups ...core.IssueGroup) *report.Report {
	r := &report.Report{
		ID:        id,
		URL:       url,
		Title:     "Page",
		Status:    200,
		Timestamp: at,
		Issues:    groups,
		Summary:   report.Summary{ByLevel: map[core.Level]int{}},
	}
	for _, g := range groups {
		r.TotalIssues += g.Count
		r.Summary.ByLevel[g.Level] += g.Count
	}
	return r
}

func group(name string, level core.Level, count int) core.IssueGroup {
	return core.IssueGroup{Name: name, Criterion: "1.1.1", Level: level, Count: count}
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	assert.Equal(t, ":memory:", store.Path())
	require.NoError(t, store.Close())

	// Closing an unopened store is a no-op.
	assert.NoError(t, NewSQLiteStore(nil).Close())
}

func TestSQLiteStore_OpenFile(t *testing.T) {
	path := t.TempDir() + "/nested/state.db"

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Migrate())
	require.NoError(t, store.SaveRun(testReport("r1", "https://a.test", time.Now())))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate())

	runs, err := reopened.ListRuns("", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// Running again is idempotent.
	require.NoError(t, store.Migrate())

	for _, table := range []string{"runs", "issue_groups", "v_latest_runs", "v_criteria"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	assert.ErrorIs(t, store.Migrate(), ErrNotOpen)
	assert.ErrorIs(t, store.SaveRun(&report.Report{}), ErrNotOpen)

	_, err := store.ListRuns("", 10)
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = store.GetRunGroups("x")
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = store.MigrationVersion()
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestSQLiteStore_SaveAndList(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.SaveRun(testReport("r1", "https://a.test", base,
		group("Image alt text", core.LevelA, 3))))
	require.NoError(t, store.SaveRun(testReport("r2", "https://b.test", base.Add(time.Minute))))
	require.NoError(t, store.SaveRun(testReport("r3", "https://a.test", base.Add(2*time.Minute),
		group("Reflow", core.LevelAA, 1),
		group("Image alt text", core.LevelA, 2))))

	tests := []struct {
		name  string
		url   string
		limit int
		want  []string
	}{
		{"all pages", "", 0, []string{"r3", "r2", "r1"}},
		{"limited", "", 2, []string{"r3", "r2"}},
		{"one page", "https://a.test", 10, []string{"r3", "r1"}},
		{"unknown page", "https://c.test", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.ListRuns(tt.url, tt.limit)
			require.NoError(t, err)

			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	runs, err := store.ListRuns("https://a.test", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, "Page", got.Title)
	assert.Equal(t, 200, got.Status)
	assert.Equal(t, 3, got.TotalIssues)
	assert.Equal(t, 2, got.LevelA)
	assert.Equal(t, 1, got.LevelAA)
	assert.Equal(t, 0, got.LevelAAA)
	assert.True(t, got.CheckedAt.Equal(base.Add(2*time.Minute)), "checked_at = %v", got.CheckedAt)
}

func TestSQLiteStore_GetRunGroups(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SaveRun(testReport("r1", "https://a.test", time.Now(),
		group("Reflow", core.LevelAA, 1),
		group("Image alt text", core.LevelA, 2))))
	require.NoError(t, store.SaveRun(testReport("clean", "https://a.test", time.Now())))

	groups, err := store.GetRunGroups("r1")
	require.NoError(t, err)
	assert.Equal(t, []GroupRecord{
		{Name: "Reflow", Criterion: "1.1.1", Level: core.LevelAA, Count: 1},
		{Name: "Image alt text", Criterion: "1.1.1", Level: core.LevelA, Count: 2},
	}, groups)

	groups, err = store.GetRunGroups("clean")
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = store.GetRunGroups("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_DuplicateRunRollsBack(t *testing.T) {
	store := setupTestStore(t)
	r := testReport("dup", "https://a.test", time.Now(), group("Reflow", core.LevelAA, 1))

	require.NoError(t, store.SaveRun(r))
	require.Error(t, store.SaveRun(r))

	groups, err := store.GetRunGroups("dup")
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := NewSQLiteStore(nil)
	store.db = db
	t.Cleanup(func() { _ = db.Close() })
	return store, mock
}

func TestSQLiteStore_SaveRunErrors(t *testing.T) {
	r := testReport("r1", "https://a.test", time.Now(), group("Reflow", core.LevelAA, 1))

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			errMsg: "failed to begin transaction",
		},
		{
			name: "insert run fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert run",
		},
		{
			name: "insert group fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO issue_groups").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert issue group",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO issue_groups").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			errMsg: "failed to commit run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			err := store.SaveRun(r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, assert.AnError)
		})
	}
}

func TestSQLiteStore_QueryErrors(t *testing.T) {
	t.Run("list runs", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("FROM runs").WillReturnError(assert.AnError)

		_, err := store.ListRuns("", 5)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan run", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("FROM runs").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1"))

		_, err := store.ListRuns("", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan run")
	})

	t.Run("run lookup", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(assert.AnError)

		_, err := store.GetRunGroups("r1")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("groups query", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
		mock.ExpectQuery("FROM issue_groups").WillReturnError(assert.AnError)

		_, err := store.GetRunGroups("r1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get issue groups")
	})
}
