//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package tabular provides the labeled table value type that comparison operates on.
package tabular

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates between two-dimensional and one-dimensional tables.
type Kind string

const (
	// KindDataFrame is a two-dimensional table with ordered columns.
	KindDataFrame Kind = "dataframe"
	// KindSeries is a one-dimensional named sequence of values.
	KindSeries Kind = "series"
)

// Table is a labeled dataset: ordered column labels, a row index and
// heterogeneous cell values. Cells are canonicalized at construction to
// nil, bool, float64 or string, so that equality and the interchange
// JSON round-trip are exact. A Table is never mutated after construction;
// all operations return new tables and all accessors return copies.
type Table struct {
	kind    Kind
	name    string
	columns []string
	index   []any
	rows    [][]any
}

// Option configures table construction.
type Option func(*options)

type options struct {
	index []any
}

// WithIndex sets explicit row index values. The default index is the
// dense sequence 0..n-1.
func WithIndex(index []any) Option {
	return func(o *options) {
		o.index = index
	}
}

// New constructs a two-dimensional table from column labels and rows.
// Every row must have exactly one cell per column, and every cell must be
// nil, bool, a numeric type or string.
func New(columns []string, rows [][]any, opt ...Option) (*Table, error) {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	canonRows := make([][]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(columns))
		}
		canonRow := make([]any, len(row))
		for j, cell := range row {
			v, err := canonicalValue(cell)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			canonRow[j] = v
		}
		canonRows = append(canonRows, canonRow)
	}
	index, err := buildIndex(opts.index, len(rows))
	if err != nil {
		return nil, err
	}
	return &Table{
		kind:    KindDataFrame,
		columns: append([]string{}, columns...),
		index:   index,
		rows:    canonRows,
	}, nil
}

// FromSeries constructs a one-dimensional table from a name and values.
func FromSeries(name string, values []any, opt ...Option) (*Table, error) {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	rows := make([][]any, 0, len(values))
	for i, v := range values {
		canon, err := canonicalValue(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		rows = append(rows, []any{canon})
	}
	index, err := buildIndex(opts.index, len(values))
	if err != nil {
		return nil, err
	}
	return &Table{
		kind:    KindSeries,
		name:    name,
		columns: []string{name},
		index:   index,
		rows:    rows,
	}, nil
}

// buildIndex canonicalizes an explicit index or generates the dense default.
func buildIndex(index []any, numRows int) ([]any, error) {
	if index == nil {
		return denseIndex(numRows), nil
	}
	if len(index) != numRows {
		return nil, fmt.Errorf("index has %d values, want %d", len(index), numRows)
	}
	canon := make([]any, len(index))
	for i, v := range index {
		c, err := canonicalValue(v)
		if err != nil {
			return nil, fmt.Errorf("index value %d: %w", i, err)
		}
		canon[i] = c
	}
	return canon, nil
}

func denseIndex(n int) []any {
	index := make([]any, n)
	for i := range index {
		index[i] = float64(i)
	}
	return index
}

// canonicalValue folds supported cell types into the canonical set.
func canonicalValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, float64, string:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", val.String(), err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T", v)
	}
}

// Kind returns the table kind.
func (t *Table) Kind() Kind {
	return t.kind
}

// Name returns the series name. It is empty for dataframes.
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the ordered column labels.
func (t *Table) Columns() []string {
	return append([]string{}, t.columns...)
}

// Index returns a copy of the row index values.
func (t *Table) Index() []any {
	return append([]any{}, t.index...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// Rows returns a deep copy of the cell matrix.
func (t *Table) Rows() [][]any {
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]any{}, row...)
	}
	return rows
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		kind:    t.kind,
		name:    t.name,
		columns: append([]string{}, t.columns...),
		index:   append([]any{}, t.index...),
		rows:    t.Rows(),
	}
}

// Equal reports cell-for-cell, column-for-column, row-for-row equality,
// including index values and null markers.
func (t *Table) Equal(o *Table) bool {
	if t.kind != o.kind {
		return false
	}
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.columns {
		if o.columns[i] != c {
			return false
		}
	}
	for i, v := range t.index {
		if o.index[i] != v {
			return false
		}
	}
	for i, row := range t.rows {
		for j, cell := range row {
			if o.rows[i][j] != cell {
				return false
			}
		}
	}
	return true
}

// ToDataFrame promotes a series to a single-column dataframe whose column
// label is the series name. A dataframe passes through as a deep copy.
func (t *Table) ToDataFrame() *Table {
	promoted := t.Clone()
	promoted.kind = KindDataFrame
	promoted.name = ""
	return promoted
}

// ResetIndex returns a copy with the dense 0..n-1 index.
func (t *Table) ResetIndex() *Table {
	reset := t.Clone()
	reset.index = denseIndex(len(reset.rows))
	return reset
}

// RenameColumns returns a copy with the given column labels.
func (t *Table) RenameColumns(columns []string) (*Table, error) {
	if len(columns) != len(t.columns) {
		return nil, fmt.Errorf("rename with %d labels, table has %d columns", len(columns), len(t.columns))
	}
	renamed := t.Clone()
	renamed.columns = append([]string{}, columns...)
	if renamed.kind == KindSeries && len(columns) == 1 {
		renamed.name = columns[0]
	}
	return renamed, nil
}

// SortByFirstColumn returns a copy with rows stably sorted ascending by
// the values of the first column, index values traveling with their rows.
// It returns an error when first-column values are not mutually
// comparable. A zero-column table sorts to itself.
func (t *Table) SortByFirstColumn() (*Table, error) {
	if len(t.columns) == 0 {
		return t.Clone(), nil
	}
	if err := checkComparable(t.rows); err != nil {
		return nil, err
	}
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessValue(t.rows[order[a]][0], t.rows[order[b]][0])
	})
	sorted := &Table{
		kind:    t.kind,
		name:    t.name,
		columns: append([]string{}, t.columns...),
		index:   make([]any, len(t.index)),
		rows:    make([][]any, len(t.rows)),
	}
	for pos, src := range order {
		sorted.index[pos] = t.index[src]
		sorted.rows[pos] = append([]any{}, t.rows[src]...)
	}
	return sorted, nil
}

// checkComparable verifies that all non-nil first-column values share one
// concrete type, the precondition for a total sort order.
func checkComparable(rows [][]any) error {
	var seen any
	for _, row := range rows {
		cell := row[0]
		if cell == nil {
			continue
		}
		if seen == nil {
			seen = cell
			continue
		}
		if fmt.Sprintf("%T", seen) != fmt.Sprintf("%T", cell) {
			return fmt.Errorf("mixed types %T and %T in sort column", seen, cell)
		}
	}
	return nil
}

// lessValue orders two canonical cell values. Nil sorts before non-nil.
func lessValue(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	case bool:
		return !av && b.(bool)
	default:
		return false
	}
}

// RowKey returns a canonical string key for row i, suitable for building
// row-tuple sets. Cells are canonicalized at construction, so encoding
// cannot fail.
func (t *Table) RowKey(i int) string {
	key, _ := json.Marshal(t.rows[i])
	return string(key)
}
