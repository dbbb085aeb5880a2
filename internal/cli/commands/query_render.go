package commands

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// queryResult is the materialized result set of one query.
type queryResult struct {
	cols []string
	rows []map[string]any
}

func collectRows(rows *sql.Rows) (*queryResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &queryResult{cols: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		res.rows = append(res.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func renderResults(w io.Writer, rows *sql.Rows, format string) error {
	res, err := collectRows(rows)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json":
		return renderRowsJSON(w, res)
	case "csv":
		return renderRowsCSV(w, res)
	case "md", "markdown":
		return renderRowsTable(w, res, true)
	default:
		return renderRowsTable(w, res, false)
	}
}

func renderRowsTable(w io.Writer, res *queryResult, markdown bool) error {
	if len(res.rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	headerRow := make(table.Row, len(res.cols))
	for i, col := range res.cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, result := range res.rows {
		row := make(table.Row, len(res.cols))
		for i, col := range res.cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
		return nil
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(res.rows))
	return nil
}

func renderRowsJSON(w io.Writer, res *queryResult) error {
	rows := res.rows
	if rows == nil {
		rows = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderRowsCSV(w io.Writer, res *queryResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.cols); err != nil {
		return err
	}
	for _, result := range res.rows {
		record := make([]string, len(res.cols))
		for i, col := range res.cols {
			record[i] = formatValue(result[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func listTablesFromDB(ctx context.Context, w io.Writer, db *sql.DB, format string, viewsOnly bool) error {
	query := `
		SELECT name, type
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		AND name NOT LIKE 'goose_%'
	`
	if viewsOnly {
		query += ` AND type = 'view'`
	}
	query += ` ORDER BY type, name`

	return executeAndRenderQuery(ctx, w, db, query, format)
}

// columnInfo represents schema column information.
type columnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable string `json:"nullable"`
	Default  string `json:"default"`
	PK       bool   `json:"pk"`
}

type schemaOutput struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Columns []columnInfo `json:"columns"`
}

func showSchemaFromDB(ctx context.Context, w io.Writer, db *sql.DB, tableName, format string) error {
	var objType string
	err := db.QueryRowContext(ctx, `
		SELECT type FROM sqlite_master
		WHERE name = ? AND type IN ('table', 'view')
	`, tableName).Scan(&objType)
	if err == sql.ErrNoRows {
		return fmt.Errorf("table or view '%s' not found", tableName)
	}
	if err != nil {
		return err
	}

	// The name is known to exist, so it is safe to interpolate.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	var columns []columnInfo
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return err
		}

		nullable := "YES"
		if notNull == 1 {
			nullable = "NO"
		}
		defaultVal := dflt.String
		if pk > 0 {
			if defaultVal != "" {
				defaultVal += " "
			}
			defaultVal += "(primary key)"
		}

		columns = append(columns, columnInfo{
			Name:     name,
			Type:     colType,
			Nullable: nullable,
			Default:  defaultVal,
			PK:       pk > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schemaOutput{Name: tableName, Type: objType, Columns: columns})
	}

	title := "Table"
	if objType == "view" {
		title = "View"
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", title, tableName)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Default"})
	for _, col := range columns {
		t.AppendRow(table.Row{col.Name, col.Type, col.Nullable, col.Default})
	}
	t.Render()

	if objType == "table" {
		indexes := tableIndexes(ctx, db, tableName)
		if len(indexes) > 0 {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "Indexes:")
			for _, idx := range indexes {
				_, _ = fmt.Fprintf(w, "  %s\n", idx)
			}
		}
	}
	return nil
}

// tableIndexes lists the named indexes of a table. Errors yield no indexes.
func tableIndexes(ctx context.Context, db *sql.DB, tableName string) []string {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND tbl_name = ?
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`, tableName)
	if err != nil {
		return nil
	}
	defer func() { _ = rows.Close() }()

	var indexes []string
	for rows.Next() {
		var name string
		if rows.Scan(&name) == nil {
			indexes = append(indexes, name)
		}
	}
	return indexes
}
