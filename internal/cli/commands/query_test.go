package commands

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSeededDB seeds a history database in dir and opens it read-only.
func openSeededDB(t *testing.T, dir string) *sql.DB {
	t.Helper()
	seedHistory(t, dir)
	db, err := openStateDBReadOnly(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()
	assert.Equal(t, "query [SQL]", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"tables", "views", "schema"}, names)
}

func TestQueryCommand_DirectSQL(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut []string
	}{
		{
			name:    "table",
			args:    []string{"SELECT id, url FROM runs ORDER BY id"},
			wantOut: []string{"run-1", "https://b.test/", "(3 rows)"},
		},
		{
			name:    "markdown",
			args:    []string{"SELECT id, total_issues FROM runs ORDER BY id", "--format", "md"},
			wantOut: []string{"| id | total_issues |", "| run-1 | 2 |"},
		},
		{
			name:    "csv",
			args:    []string{"SELECT id, url FROM runs ORDER BY id", "-f", "csv"},
			wantOut: []string{"id,url\nrun-1,https://a.test/\n"},
		},
		{
			name:    "empty",
			args:    []string{"SELECT * FROM runs WHERE 1=0"},
			wantOut: []string{"(0 rows)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			seedHistory(t, dir)

			out, err := executeCommand(t, NewQueryCommand(), tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestQueryCommand_Views(t *testing.T) {
	dir := isolate(t)
	seedHistory(t, dir)

	t.Run("latest run per page", func(t *testing.T) {
		out, err := executeCommand(t, NewQueryCommand(), "SELECT id FROM v_latest_runs ORDER BY url", "--format", "json")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "run-3", rows[0]["id"])
		assert.Equal(t, "run-2", rows[1]["id"])
	})

	t.Run("criteria over latest runs", func(t *testing.T) {
		out, err := executeCommand(t, NewQueryCommand(), "SELECT criterion, pages, issues FROM v_criteria ORDER BY criterion", "--format", "json")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "1.1.1", rows[0]["criterion"])
		// run-1 is superseded by run-3 for the same page.
		assert.EqualValues(t, 1, rows[0]["issues"])
		assert.Equal(t, "1.4.10", rows[1]["criterion"])
	})
}

func TestQueryCommand_Input(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		dir := isolate(t)
		seedHistory(t, dir)
		file := writePage(t, dir, "q.sql", "SELECT COUNT(*) AS n FROM issue_groups")

		out, err := executeCommand(t, NewQueryCommand(), "--input", file, "--format", "csv")
		require.NoError(t, err)
		assert.Equal(t, "n\n3\n", out)
	})

	t.Run("from stdin", func(t *testing.T) {
		dir := isolate(t)
		seedHistory(t, dir)

		cmd := NewQueryCommand()
		cmd.SetIn(strings.NewReader("SELECT url FROM runs WHERE id = 'run-2'"))
		out, err := executeCommand(t, cmd, "--format", "csv")
		require.NoError(t, err)
		assert.Equal(t, "url\nhttps://b.test/\n", out)
	})

	t.Run("empty stdin", func(t *testing.T) {
		dir := isolate(t)
		seedHistory(t, dir)

		cmd := NewQueryCommand()
		cmd.SetIn(strings.NewReader("  \n"))
		_, err := executeCommand(t, cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no query given")
	})
}

func TestQueryCommand_Errors(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		isolate(t)
		_, err := executeCommand(t, NewQueryCommand(), "SELECT 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "history database not found")
	})

	t.Run("read only", func(t *testing.T) {
		dir := isolate(t)
		seedHistory(t, dir)
		_, err := executeCommand(t, NewQueryCommand(), "DELETE FROM runs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query failed")
	})

	t.Run("bad sql", func(t *testing.T) {
		dir := isolate(t)
		seedHistory(t, dir)
		_, err := executeCommand(t, NewQueryCommand(), "SELEKT")
		require.Error(t, err)
	})
}

func TestQueryCommand_Tables(t *testing.T) {
	dir := isolate(t)
	db := openSeededDB(t, dir)
	ctx := context.Background()

	buf := new(bytes.Buffer)
	require.NoError(t, listTablesFromDB(ctx, buf, db, "table", false))
	out := buf.String()
	assert.Contains(t, out, "issue_groups")
	assert.Contains(t, out, "v_latest_runs")
	assert.NotContains(t, out, "goose_")

	buf.Reset()
	require.NoError(t, listTablesFromDB(ctx, buf, db, "csv", true))
	assert.Equal(t, "name,type\nv_criteria,view\nv_latest_runs,view\n", buf.String())

	t.Run("subcommand inherits format", func(t *testing.T) {
		out, err := executeCommand(t, NewQueryCommand(), "views", "--format", "csv")
		require.NoError(t, err)
		assert.Equal(t, "name,type\nv_criteria,view\nv_latest_runs,view\n", out)
	})
}

func TestQueryCommand_Schema(t *testing.T) {
	dir := isolate(t)
	db := openSeededDB(t, dir)
	ctx := context.Background()

	t.Run("table", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, showSchemaFromDB(ctx, buf, db, "runs", "table"))
		out := buf.String()
		assert.Contains(t, out, "Table: runs")
		assert.Contains(t, out, "checked_at")
		assert.Contains(t, out, "(primary key)")
		assert.Contains(t, out, "idx_runs_url_checked_at")
	})

	t.Run("view", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, showSchemaFromDB(ctx, buf, db, "v_criteria", "table"))
		assert.Contains(t, buf.String(), "View: v_criteria")
	})

	t.Run("json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, showSchemaFromDB(ctx, buf, db, "issue_groups", "json"))

		var schema schemaOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
		assert.Equal(t, "table", schema.Type)
		assert.Len(t, schema.Columns, 6)
	})

	t.Run("not found", func(t *testing.T) {
		err := showSchemaFromDB(ctx, new(bytes.Buffer), db, "nonexistent_table", "table")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "NULL"},
		{"hello", "hello"},
		{int64(42), "42"},
		{3.14, "3.14"},
		{time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), "2026-03-14T09:00:00Z"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatValue(tt.input))
	}
}

func TestRenderRowsCSV_Quoting(t *testing.T) {
	buf := new(bytes.Buffer)
	res := &queryResult{
		cols: []string{"name"},
		rows: []map[string]any{{"name": `with,comma "and" quote`}},
	}
	require.NoError(t, renderRowsCSV(buf, res))
	assert.Equal(t, "name\n\"with,comma \"\"and\"\" quote\"\n", buf.String())
}
