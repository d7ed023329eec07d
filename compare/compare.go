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
	"github.com/evalforge/tabeval/log"
	"github.com/evalforge/tabeval/tabular"
)

// Compare computes a similarity score in [0,1] between two tables under
// the given config. It never fails for valid tables: malformed configs
// are rejected at construction and never reach this point.
func Compare(left, right *tabular.Table, cfg *Config) float64 {
	switch cfg.Mode() {
	case ModeSortAndExactMatch:
		return compareSorted(left, right, cfg)
	case ModeScoreOverlap:
		return compareOverlap(left, right, cfg)
	default:
		return compareExact(left, right, cfg)
	}
}

// compareExact scores 1.0 for cell-for-cell equality of the normalized
// tables, 0.0 otherwise. No partial credit.
func compareExact(left, right *tabular.Table, cfg *Config) float64 {
	if Normalize(left, cfg).Equal(Normalize(right, cfg)) {
		return 1.0
	}
	return 0.0
}

// compareSorted sorts both normalized sides by their first column before
// the exact-equality check. A side whose first column cannot be sorted
// falls back to its unsorted normalized form; this is a soft degradation,
// not a failure. Zero-column tables skip sorting entirely.
func compareSorted(left, right *tabular.Table, cfg *Config) float64 {
	normLeft := Normalize(left, cfg)
	normRight := Normalize(right, cfg)
	if normLeft.NumCols() > 0 && normRight.NumCols() > 0 {
		normLeft = sortOrFallback(normLeft, cfg)
		normRight = sortOrFallback(normRight, cfg)
	}
	if normLeft.Equal(normRight) {
		return 1.0
	}
	return 0.0
}

// sortOrFallback sorts by the first column in its current positional
// order, re-densifying the index afterwards when the config drops it.
func sortOrFallback(t *tabular.Table, cfg *Config) *tabular.Table {
	sorted, err := t.SortByFirstColumn()
	if err != nil {
		log.Debugf("sort by first column degraded to unsorted comparison: %v", err)
		return t
	}
	if cfg.DropIndex() {
		sorted = sorted.ResetIndex()
	}
	return sorted
}

// compareOverlap scores the Jaccard similarity of the unique row-tuple
// sets of both sides.
func compareOverlap(left, right *tabular.Table, cfg *Config) float64 {
	// Column labels are checked on the unnormalized tables so that a
	// column-count mismatch is caught even when normalization would later
	// discard the names.
	if !cfg.IgnoreColumnNames() && !equalColumns(left.Columns(), right.Columns()) {
		return 0.0
	}
	normLeft := Normalize(left, cfg)
	normRight := Normalize(right, cfg)
	if normLeft.NumCols() != normRight.NumCols() {
		return 0.0
	}
	if normLeft.NumRows() == 0 && normRight.NumRows() == 0 {
		return 1.0
	}
	if normLeft.NumRows() == 0 || normRight.NumRows() == 0 {
		return 0.0
	}
	leftKeys := rowKeySet(normLeft)
	rightKeys := rowKeySet(normRight)
	intersection := 0
	for key := range leftKeys {
		if _, ok := rightKeys[key]; ok {
			intersection++
		}
	}
	union := len(leftKeys) + len(rightKeys) - intersection
	return float64(intersection) / float64(union)
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func rowKeySet(t *tabular.Table) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		keys[t.RowKey(i)] = struct{}{}
	}
	return keys
}
