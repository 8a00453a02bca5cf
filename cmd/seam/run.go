package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/seamql/seam"
	"github.com/seamql/seam/internal/cli"
)

var (
	runDB       string
	runParams   []string
	runPage     int
	runPageSize int
)

var runCmd = &cobra.Command{
	Use:   "run <query-file>",
	Short: "Execute a query definition against the database",
	Long: `Execute a YAML query definition against the configured database and
print the result rows as JSON, one object per line.

With --page and --page-size the query runs windowed: the output includes
pagination metadata (total row count and whether more pages remain).`,
	Example: `  # Run a query with the database from seam.yaml
  seam run queries/users.yaml

  # Run against an explicit database
  seam run queries/users.yaml --db postgres://localhost/app

  # Fetch the second page of 25 rows
  seam run queries/users.yaml --page 1 --page-size 25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := loadQueryFile(args[0])
		if err != nil {
			return err
		}

		opts, err := applyParamOverrides(qf.Options, runParams)
		if err != nil {
			return err
		}

		format, err := placeholderFromName(cfg.ResolvedPlaceholder())
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		runner := seam.NewRunner(db, seam.WithPlaceholder(format))
		ctx := context.Background()

		pageSize := runPageSize
		if pageSize == 0 {
			pageSize = cfg.Run.PageSize
		}

		if cmd.Flags().Changed("page") || pageSize > 0 {
			return runPaged(ctx, runner, &qf.Query, opts, runPage, pageSize)
		}
		return runAll(ctx, runner, &qf.Query, opts)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runDB, "db", "", "database URL")
	f.StringArrayVar(&runParams, "param", nil, "override a named parameter (key=value, repeatable)")
	f.IntVar(&runPage, "page", 0, "zero-based page to fetch")
	f.IntVar(&runPageSize, "page-size", 0, "rows per page")
}

// openDatabase opens the configured database, preferring the --db flag.
func openDatabase() (*sql.DB, error) {
	dsn := runDB
	if dsn == "" {
		var err error
		dsn, err = cfg.DSN()
		if err != nil {
			return nil, cli.ConfigError("database configuration", err)
		}
	}

	driver := cfg.Database.Driver
	if driver == "" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, cli.DBConnectError("opening database", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cli.DBConnectError("connecting to database", err)
	}
	return db, nil
}

func runAll(ctx context.Context, runner *seam.Runner, q *seam.Query, opts *seam.Options) error {
	rows, err := runner.Query(ctx, q, opts)
	if err != nil {
		return cli.GeneralError("running query", err)
	}
	return printRows(rows)
}

func runPaged(ctx context.Context, runner *seam.Runner, q *seam.Query, opts *seam.Options, page, pageSize int) error {
	res, err := runner.QueryPage(ctx, q, opts, page, pageSize)
	if err != nil {
		return cli.GeneralError("running paged query", err)
	}

	if err := printRows(res.Data); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "page %d (%d rows), total %d, more: %v\n",
			res.Pagination.Page, len(res.Data), res.Pagination.Total, res.Pagination.HasMore)
	}
	return nil
}

func printRows(rows []seam.Row) error {
	enc := json.NewEncoder(os.Stdout)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return cli.GeneralError("encoding row", err)
		}
	}
	return nil
}
