// Package dataset loads the NYC 311 service-request extract into a
// column-oriented, schema-validated table and computes the aggregations the
// exploration workflow needs.
//
// The file format is tab-separated text with a header row. The header is
// validated against a declared schema before any row is parsed; a column
// mismatch is a load-time error, not something discovered mid-aggregation.
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// ColumnKind declares how a column's cells are parsed.
type ColumnKind int

const (
	// String keeps the raw cell value.
	String ColumnKind = iota
	// Int parses the cell as a base-10 integer.
	Int
	// Float parses the cell as a float64.
	Float
	// Time parses the cell with the column's TimeLayout. An empty cell is
	// stored as the zero time (missing), a malformed non-empty cell is an
	// error.
	Time
)

// Column declares one column of the expected file layout.
type Column struct {
	Name       string
	Kind       ColumnKind
	TimeLayout string // required for Time columns
}

// Schema is the ordered set of columns a file must carry. Extra columns in
// the file are rejected, as are missing or reordered ones.
type Schema []Column

// Table is a column-oriented, fully typed in-memory table.
type Table struct {
	schema Schema
	nRows  int

	strs   map[string][]string
	ints   map[string][]int64
	floats map[string][]float64
	times  map[string][]time.Time
}

// ReadTable parses tab-separated text from r, validating the header against
// schema before any cell is parsed. All cells are parsed eagerly; the first
// malformed cell aborts the load with its row and column in the error.
func ReadTable(r io.Reader, schema Schema) (*Table, error) {
	if len(schema) == 0 {
		return nil, errors.NewValueError("dataset.ReadTable", "empty schema")
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = len(schema)
	// The extract carries stray double quotes inside free-text descriptors.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("dataset.ReadTable", "missing header row", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadTable: reading header")
	}

	for i, col := range schema {
		if header[i] != col.Name {
			return nil, errors.NewValidationError("header", "column name does not match schema at position "+strconv.Itoa(i), header[i])
		}
	}

	t := &Table{
		schema: schema,
		strs:   make(map[string][]string),
		ints:   make(map[string][]int64),
		floats: make(map[string][]float64),
		times:  make(map[string][]time.Time),
	}

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadTable: reading row %d", row)
		}

		for i, col := range schema {
			cell := record[i]
			switch col.Kind {
			case String:
				t.strs[col.Name] = append(t.strs[col.Name], cell)
			case Int:
				v, err := strconv.ParseInt(cell, 10, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "dataset.ReadTable: row %d, column %q", row, col.Name)
				}
				t.ints[col.Name] = append(t.ints[col.Name], v)
			case Float:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "dataset.ReadTable: row %d, column %q", row, col.Name)
				}
				t.floats[col.Name] = append(t.floats[col.Name], v)
			case Time:
				if cell == "" {
					t.times[col.Name] = append(t.times[col.Name], time.Time{})
					continue
				}
				v, err := time.Parse(col.TimeLayout, cell)
				if err != nil {
					return nil, errors.Wrapf(err, "dataset.ReadTable: row %d, column %q", row, col.Name)
				}
				t.times[col.Name] = append(t.times[col.Name], v)
			default:
				return nil, errors.NewValueError("dataset.ReadTable", "unknown column kind")
			}
		}
		row++
	}

	t.nRows = row
	return t, nil
}

// NumRows returns the number of data rows loaded.
func (t *Table) NumRows() int {
	return t.nRows
}

// Schema returns the declared schema.
func (t *Table) Schema() Schema {
	return t.schema
}

// Strings returns the values of a String column.
func (t *Table) Strings(name string) ([]string, error) {
	col, ok := t.strs[name]
	if !ok {
		return nil, errors.NewValueError("dataset.Strings", "no string column named "+name)
	}
	return col, nil
}

// Ints returns the values of an Int column.
func (t *Table) Ints(name string) ([]int64, error) {
	col, ok := t.ints[name]
	if !ok {
		return nil, errors.NewValueError("dataset.Ints", "no int column named "+name)
	}
	return col, nil
}

// Floats returns the values of a Float column.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.floats[name]
	if !ok {
		return nil, errors.NewValueError("dataset.Floats", "no float column named "+name)
	}
	return col, nil
}

// Times returns the values of a Time column. Missing cells are zero times.
func (t *Table) Times(name string) ([]time.Time, error) {
	col, ok := t.times[name]
	if !ok {
		return nil, errors.NewValueError("dataset.Times", "no time column named "+name)
	}
	return col, nil
}
