// Package export loads a run's parquet artifacts into downstream stores:
// SQLite, DuckDB or gzipped CSV.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	_ "modernc.org/sqlite"

	"github.com/inodb/geno-tables/internal/tables"
)

// ToSQLite reads the five parquet artifacts under prefix and loads them
// into a SQLite database, one table each.
func ToSQLite(ctx context.Context, prefix, dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	for _, name := range tables.AllTableNames() {
		if err := copyTable(ctx, db, prefix, name); err != nil {
			return fmt.Errorf("load %s into sqlite: %w", name, err)
		}
	}
	return nil
}

// copyTable creates one table from its parquet artifact and inserts all
// rows in a single transaction.
func copyTable(ctx context.Context, db *sql.DB, prefix, name string) error {
	tbl, err := tables.ReadTableFile(ctx, tables.ArtifactPath(prefix, name))
	if err != nil {
		return err
	}
	defer tbl.Release()

	schema := tbl.Schema()
	cols := make([]string, schema.NumFields())
	placeholders := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		f := schema.Field(i)
		cols[i] = fmt.Sprintf("%q %s", f.Name, sqliteType(f.Type))
		placeholders[i] = "?"
	}

	if _, err := db.ExecContext(ctx,
		fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	rows, err := tables.TableRows(tbl)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %q VALUES (%s)", name, strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	return tx.Commit()
}

// sqliteType maps an arrow column type to its SQLite declaration.
func sqliteType(dt arrow.DataType) string {
	switch dt.ID() {
	case arrow.STRING:
		return "TEXT"
	case arrow.BOOL:
		return "BOOLEAN"
	default:
		return "INTEGER"
	}
}
