package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/leapa11y/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// sqlite driver for history database queries.
	_ "modernc.org/sqlite"
)

// resolveStatePath returns the history database path from config or the default.
func resolveStatePath(cfg *config.Config) string {
	if cfg.StatePath != "" {
		return cfg.StatePath
	}
	return config.DefaultStateFile
}

// openStateDBReadOnly opens the history database in read-only mode.
func openStateDBReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("history database not found at %s (run 'leapa11y check' first)", path)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Query the history database",
		Long: `Query the leapa11y history database directly.

Run read-only SQL against the recorded check runs. The database holds the
runs and issue_groups tables plus two views:

  v_latest_runs  the most recent run of every page
  v_criteria     issue totals per success criterion over the latest runs

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Pages with the most issues
  leapa11y query "SELECT url, total_issues FROM v_latest_runs ORDER BY total_issues DESC"

  # List available tables
  leapa11y query tables

  # Show schema for a table
  leapa11y query schema issue_groups

  # Output as CSV
  leapa11y query "SELECT * FROM v_criteria" --format csv

  # Interactive mode
  leapa11y query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQueryViewsCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	statePath := resolveStatePath(cmdCtx.Cfg)

	var sqlQuery string
	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case isInteractive(cmd.InOrStdin()):
		return runQueryREPL(cmd, statePath, opts)
	default:
		// Piped input
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	if strings.TrimSpace(sqlQuery) == "" {
		return errors.New("no query given")
	}

	db, err := openStateDBReadOnly(statePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := executeAndRenderQuery(cmd.Context(), cmd.OutOrStdout(), db, sqlQuery, opts.Format); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

// executeAndRenderQuery executes a query and renders the rows in format.
func executeAndRenderQuery(ctx context.Context, w io.Writer, db *sql.DB, query, format string) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(w, rows, format)
}

func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List all tables and views in the history database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return listTablesFromDB(cmd.Context(), cmd.OutOrStdout(), db, opts.Format, false)
			})
		},
	}
}

func newQueryViewsCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List views only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return listTablesFromDB(cmd.Context(), cmd.OutOrStdout(), db, opts.Format, true)
			})
		},
	}
}

func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table or view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return showSchemaFromDB(cmd.Context(), cmd.OutOrStdout(), db, args[0], opts.Format)
			})
		},
	}
}

// withStateDB opens the configured history database read-only for fn.
func withStateDB(cmd *cobra.Command, fn func(db *sql.DB) error) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	db, err := openStateDBReadOnly(resolveStatePath(cmdCtx.Cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}
