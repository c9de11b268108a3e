package export

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/inodb/geno-tables/internal/tables"
)

// ToCSV reads the five parquet artifacts under prefix and writes each as a
// gzipped CSV file under outPrefix, header row included.
func ToCSV(ctx context.Context, prefix, outPrefix string) error {
	for _, name := range tables.AllTableNames() {
		if err := writeCSV(ctx, prefix, outPrefix, name); err != nil {
			return fmt.Errorf("write %s csv: %w", name, err)
		}
	}
	return nil
}

func writeCSV(ctx context.Context, prefix, outPrefix, name string) error {
	tbl, err := tables.ReadTableFile(ctx, tables.ArtifactPath(prefix, name))
	if err != nil {
		return err
	}
	defer tbl.Release()

	f, err := os.Create(fmt.Sprintf("%s_%s.csv.gz", outPrefix, name))
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	cw := csv.NewWriter(gz)

	schema := tbl.Schema()
	header := make([]string, schema.NumFields())
	for i := range header {
		header[i] = schema.Field(i).Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows, err := tables.TableRows(tbl)
	if err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return gz.Close()
}

// formatValue renders one table cell as CSV text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
