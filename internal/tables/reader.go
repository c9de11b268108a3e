package tables

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ReadTableFile reads a parquet artifact back into an in-memory arrow
// table. The caller owns the returned table and must Release it.
func ReadTableFile(ctx context.Context, path string) (arrow.Table, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open parquet file %s: %w", path, err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("create parquet reader for %s: %w", path, err)
	}

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet table %s: %w", path, err)
	}
	return tbl, nil
}

// TableRows flattens an arrow table into row-major Go values, preserving
// row order across chunk boundaries. Intended for export sinks and tests;
// large tables should be streamed instead.
func TableRows(tbl arrow.Table) ([][]any, error) {
	nrows := int(tbl.NumRows())
	ncols := int(tbl.NumCols())

	rows := make([][]any, nrows)
	for i := range rows {
		rows[i] = make([]any, ncols)
	}

	for j := 0; j < ncols; j++ {
		row := 0
		for _, chunk := range tbl.Column(j).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				v, err := arrayValue(chunk, i)
				if err != nil {
					return nil, fmt.Errorf("column %s row %d: %w", tbl.Schema().Field(j).Name, row, err)
				}
				rows[row][j] = v
				row++
			}
		}
	}

	return rows, nil
}

// arrayValue extracts one value from an arrow array as a plain Go value.
func arrayValue(arr arrow.Array, i int) (any, error) {
	if arr.IsNull(i) {
		return nil, nil
	}

	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i), nil
	case *array.Int32:
		return a.Value(i), nil
	case *array.Uint64:
		return a.Value(i), nil
	case *array.Uint32:
		return a.Value(i), nil
	case *array.Uint8:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Boolean:
		return a.Value(i), nil
	default:
		return nil, fmt.Errorf("unsupported column type %s", arr.DataType())
	}
}
