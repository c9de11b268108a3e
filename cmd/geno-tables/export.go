package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportSQLite string
	exportDuckDB string
	exportCSV    string
)

var exportCmd = &cobra.Command{
	Use:   "export <prefix>",
	Short: "Load previously generated parquet tables into a database",
	Long: `Load the five parquet artifacts written under <prefix> into one or
more downstream stores. At least one sink flag is required.`,
	Example: `  geno-tables export out/mystudy --sqlite mystudy.db
  geno-tables export out/mystudy --duckdb mystudy.duckdb --csv out/mystudy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportSQLite == "" && exportDuckDB == "" && exportCSV == "" {
			return fmt.Errorf("nothing to export: pass --sqlite, --duckdb or --csv")
		}
		return runExports(cmd.Context(), args[0], exportSQLite, exportDuckDB, exportCSV)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSQLite, "sqlite", "", "SQLite database file to create")
	exportCmd.Flags().StringVar(&exportDuckDB, "duckdb", "", "DuckDB database file to create")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "Prefix for gzipped CSV output")
}
