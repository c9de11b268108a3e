package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/geno-tables/internal/tables"
)

// ToDuckDB reads the five parquet artifacts under prefix and loads them
// into a DuckDB database file, one table each. DuckDB reads parquet
// natively, so each load is a single CREATE TABLE AS statement.
func ToDuckDB(ctx context.Context, prefix, dbPath string) error {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	for _, name := range tables.AllTableNames() {
		path := strings.ReplaceAll(tables.ArtifactPath(prefix, name), "'", "''")
		stmt := fmt.Sprintf(`CREATE TABLE %q AS SELECT * FROM read_parquet('%s')`, name, path)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("load %s into duckdb: %w", name, err)
		}
	}
	return nil
}
