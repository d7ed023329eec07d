//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonicalizesCells(t *testing.T) {
	table, err := New([]string{"a", "b"}, [][]any{
		{1, "x"},
		{int64(2), nil},
		{float32(3), true},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{float64(1), "x"},
		{float64(2), nil},
		{float64(3), true},
	}, table.Rows())
	assert.Equal(t, []any{float64(0), float64(1), float64(2)}, table.Index())
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]any{{1}})
	assert.Error(t, err)
}

func TestNewRejectsUnsupportedCell(t *testing.T) {
	_, err := New([]string{"a"}, [][]any{{struct{}{}}})
	assert.Error(t, err)
}

func TestNewRejectsIndexLengthMismatch(t *testing.T) {
	_, err := New([]string{"a"}, [][]any{{1}, {2}}, WithIndex([]any{"only-one"}))
	assert.Error(t, err)
}

func TestFromSeriesPromotion(t *testing.T) {
	series, err := FromSeries("revenue", []any{10, 20})
	require.NoError(t, err)
	assert.Equal(t, KindSeries, series.Kind())
	assert.Equal(t, "revenue", series.Name())
	assert.Equal(t, []string{"revenue"}, series.Columns())

	frame := series.ToDataFrame()
	assert.Equal(t, KindDataFrame, frame.Kind())
	assert.Equal(t, []string{"revenue"}, frame.Columns())
	assert.Equal(t, [][]any{{float64(10)}, {float64(20)}}, frame.Rows())
	// Promotion never mutates the input.
	assert.Equal(t, KindSeries, series.Kind())
}

func TestEqual(t *testing.T) {
	left, err := New([]string{"a"}, [][]any{{1}, {nil}})
	require.NoError(t, err)
	right, err := New([]string{"a"}, [][]any{{1}, {nil}})
	require.NoError(t, err)
	assert.True(t, left.Equal(right))

	differentLabel, err := New([]string{"b"}, [][]any{{1}, {nil}})
	require.NoError(t, err)
	assert.False(t, left.Equal(differentLabel))

	differentCell, err := New([]string{"a"}, [][]any{{1}, {2}})
	require.NoError(t, err)
	assert.False(t, left.Equal(differentCell))

	differentIndex, err := New([]string{"a"}, [][]any{{1}, {nil}}, WithIndex([]any{"r1", "r2"}))
	require.NoError(t, err)
	assert.False(t, left.Equal(differentIndex))
}

func TestSortByFirstColumn(t *testing.T) {
	table, err := New([]string{"a", "b"}, [][]any{
		{3, "third"},
		{1, "first"},
		{2, "second"},
	}, WithIndex([]any{"i3", "i1", "i2"}))
	require.NoError(t, err)
	sorted, err := table.SortByFirstColumn()
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{float64(1), "first"},
		{float64(2), "second"},
		{float64(3), "third"},
	}, sorted.Rows())
	// Index travels with the rows.
	assert.Equal(t, []any{"i1", "i2", "i3"}, sorted.Index())
	// Input untouched.
	assert.Equal(t, []any{"i3", "i1", "i2"}, table.Index())
}

func TestSortByFirstColumnNilSortsFirst(t *testing.T) {
	table, err := New([]string{"a"}, [][]any{{"b"}, {nil}, {"a"}})
	require.NoError(t, err)
	sorted, err := table.SortByFirstColumn()
	require.NoError(t, err)
	assert.Equal(t, [][]any{{nil}, {"a"}, {"b"}}, sorted.Rows())
}

func TestSortByFirstColumnMixedTypes(t *testing.T) {
	table, err := New([]string{"a"}, [][]any{{"x"}, {1}})
	require.NoError(t, err)
	_, err = table.SortByFirstColumn()
	assert.Error(t, err)
}

func TestSortByFirstColumnZeroColumns(t *testing.T) {
	table, err := New([]string{}, [][]any{})
	require.NoError(t, err)
	sorted, err := table.SortByFirstColumn()
	require.NoError(t, err)
	assert.True(t, table.Equal(sorted))
}

func TestResetIndex(t *testing.T) {
	table, err := New([]string{"a"}, [][]any{{1}, {2}}, WithIndex([]any{"x", "y"}))
	require.NoError(t, err)
	reset := table.ResetIndex()
	assert.Equal(t, []any{float64(0), float64(1)}, reset.Index())
	assert.Equal(t, []any{"x", "y"}, table.Index())
}

func TestRenameColumns(t *testing.T) {
	table, err := New([]string{"a", "b"}, [][]any{{1, 2}})
	require.NoError(t, err)
	renamed, err := table.RenameColumns([]string{"col_0", "col_1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"col_0", "col_1"}, renamed.Columns())
	assert.Equal(t, []string{"a", "b"}, table.Columns())

	_, err = table.RenameColumns([]string{"only-one"})
	assert.Error(t, err)
}

func TestRowKeyDistinguishesTypes(t *testing.T) {
	table, err := New([]string{"a"}, [][]any{{"1"}, {1}, {nil}})
	require.NoError(t, err)
	assert.NotEqual(t, table.RowKey(0), table.RowKey(1))
	assert.NotEqual(t, table.RowKey(1), table.RowKey(2))

	other, err := New([]string{"b"}, [][]any{{1}})
	require.NoError(t, err)
	// Keys depend only on cell values, not labels.
	assert.Equal(t, table.RowKey(1), other.RowKey(0))
}

func TestCloneIsDeep(t *testing.T) {
	table, err := New([]string{"a"}, [][]any{{1}})
	require.NoError(t, err)
	cloned := table.Clone()
	rows := cloned.Rows()
	rows[0][0] = float64(99)
	assert.Equal(t, [][]any{{float64(1)}}, cloned.Rows())
	assert.True(t, table.Equal(cloned))
}
