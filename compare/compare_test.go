//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/tabeval/tabular"
)

func singleColumn(t *testing.T, label string, values ...any) *tabular.Table {
	t.Helper()
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v}
	}
	return mustTable(t, []string{label}, rows)
}

func TestExactMatchIdentical(t *testing.T) {
	left := singleColumn(t, "A", 1, 2, 3)
	right := singleColumn(t, "A", 1, 2, 3)
	assert.Equal(t, 1.0, Compare(left, right, mustConfig(t, ModeExactMatch)))
}

func TestExactMatchReflexive(t *testing.T) {
	tables := []*tabular.Table{
		singleColumn(t, "A", 1, 2, 3),
		mustTable(t, []string{"a", "b"}, [][]any{{nil, "x"}, {1.5, "y"}}),
		mustTable(t, []string{}, [][]any{}),
	}
	cfg := mustConfig(t, ModeExactMatch)
	for _, table := range tables {
		assert.Equal(t, 1.0, Compare(table, table, cfg))
	}
}

func TestExactMatchOrderSensitive(t *testing.T) {
	left := singleColumn(t, "A", 1, 2, 3)
	right := singleColumn(t, "A", 3, 2, 1)
	assert.Equal(t, 0.0, Compare(left, right, mustConfig(t, ModeExactMatch)))
	assert.Equal(t, 1.0, Compare(left, right, mustConfig(t, ModeSortAndExactMatch)))
}

func TestExactMatchNoPartialCredit(t *testing.T) {
	left := singleColumn(t, "A", 1, 2, 3)
	right := singleColumn(t, "A", 1, 2, 4)
	assert.Equal(t, 0.0, Compare(left, right, mustConfig(t, ModeExactMatch)))
}

func TestSortInvarianceUnderPermutation(t *testing.T) {
	table := mustTable(t, []string{"a", "b"}, [][]any{
		{3, "z"},
		{1, "x"},
		{2, "y"},
	})
	permuted := mustTable(t, []string{"a", "b"}, [][]any{
		{2, "y"},
		{3, "z"},
		{1, "x"},
	})
	assert.Equal(t, 1.0, Compare(table, permuted, mustConfig(t, ModeSortAndExactMatch)))
}

func TestSortAndExactMatchMixedTypesFallsBack(t *testing.T) {
	// Mixed first-column types cannot be sorted; both sides degrade to the
	// unsorted comparison.
	left := singleColumn(t, "A", "x", 1)
	right := singleColumn(t, "A", "x", 1)
	assert.Equal(t, 1.0, Compare(left, right, mustConfig(t, ModeSortAndExactMatch)))

	reversed := singleColumn(t, "A", 1, "x")
	assert.Equal(t, 0.0, Compare(left, reversed, mustConfig(t, ModeSortAndExactMatch)))
}

func TestSortAndExactMatchZeroColumns(t *testing.T) {
	left := mustTable(t, []string{}, [][]any{})
	right := mustTable(t, []string{}, [][]any{})
	assert.Equal(t, 1.0, Compare(left, right, mustConfig(t, ModeSortAndExactMatch)))
}

func TestSortAndExactMatchKeepsIndexWithRows(t *testing.T) {
	cfg := mustConfig(t, ModeSortAndExactMatch, WithDropIndex(false))
	left := mustTable(t, []string{"a"}, [][]any{{1}, {2}}, tabular.WithIndex([]any{"i1", "i2"}))
	permuted := mustTable(t, []string{"a"}, [][]any{{2}, {1}}, tabular.WithIndex([]any{"i2", "i1"}))
	assert.Equal(t, 1.0, Compare(left, permuted, cfg))

	// Same rows but different index labels stay unequal when the index is kept.
	relabeled := mustTable(t, []string{"a"}, [][]any{{1}, {2}}, tabular.WithIndex([]any{"j1", "j2"}))
	assert.Equal(t, 0.0, Compare(left, relabeled, cfg))
}

func TestScoreOverlapJaccard(t *testing.T) {
	left := singleColumn(t, "A", 1, 2, 3)
	right := singleColumn(t, "A", 2, 3, 4)
	assert.Equal(t, 0.5, Compare(left, right, mustConfig(t, ModeScoreOverlap)))
}

func TestScoreOverlapColumnNameCheck(t *testing.T) {
	left := singleColumn(t, "A", 1)
	right := singleColumn(t, "B", 1)
	assert.Equal(t, 0.0, Compare(left, right, mustConfig(t, ModeScoreOverlap)))
	assert.Equal(t, 1.0, Compare(left, right,
		mustConfig(t, ModeScoreOverlap, WithIgnoreColumnNames(true))))
}

func TestScoreOverlapColumnCountMismatch(t *testing.T) {
	left := mustTable(t, []string{"a", "b"}, [][]any{{1, 2}})
	right := singleColumn(t, "a", 1)
	cfg := mustConfig(t, ModeScoreOverlap, WithIgnoreColumnNames(true))
	assert.Equal(t, 0.0, Compare(left, right, cfg))
}

func TestScoreOverlapEmptyTables(t *testing.T) {
	empty := singleColumn(t, "A")
	alsoEmpty := singleColumn(t, "A")
	nonEmpty := singleColumn(t, "A", 1)
	cfg := mustConfig(t, ModeScoreOverlap)
	assert.Equal(t, 1.0, Compare(empty, alsoEmpty, cfg))
	assert.Equal(t, 0.0, Compare(empty, nonEmpty, cfg))
	assert.Equal(t, 0.0, Compare(nonEmpty, empty, cfg))
}

func TestScoreOverlapSymmetryAndBounds(t *testing.T) {
	cfg := mustConfig(t, ModeScoreOverlap)
	pairs := [][2]*tabular.Table{
		{singleColumn(t, "A", 1, 2), singleColumn(t, "A", 2, 3)},
		{singleColumn(t, "A", 1), singleColumn(t, "A", 1)},
		{singleColumn(t, "A", 1, 1, 2), singleColumn(t, "A", 4)},
		{singleColumn(t, "A", nil), singleColumn(t, "A", nil, 1)},
	}
	for _, pair := range pairs {
		forward := Compare(pair[0], pair[1], cfg)
		backward := Compare(pair[1], pair[0], cfg)
		assert.Equal(t, forward, backward)
		assert.GreaterOrEqual(t, forward, 0.0)
		assert.LessOrEqual(t, forward, 1.0)
	}
}

func TestScoreOverlapDeduplicatesRows(t *testing.T) {
	left := singleColumn(t, "A", 1, 1, 2)
	right := singleColumn(t, "A", 1, 2, 2)
	// Unique row sets are identical on both sides.
	assert.Equal(t, 1.0, Compare(left, right, mustConfig(t, ModeScoreOverlap)))
}

func TestCompareSeriesAgainstDataFrame(t *testing.T) {
	series, err := tabular.FromSeries("A", []any{1, 2, 3})
	require.NoError(t, err)
	frame := singleColumn(t, "A", 1, 2, 3)
	assert.Equal(t, 1.0, Compare(series, frame, mustConfig(t, ModeExactMatch)))
}
