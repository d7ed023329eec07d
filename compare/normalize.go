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
	"fmt"

	"github.com/evalforge/tabeval/tabular"
)

// ToTabular promotes a series to a single-column dataframe whose column
// label is the series name. A dataframe passes through as a defensive
// copy. The input is never mutated.
func ToTabular(t *tabular.Table) *tabular.Table {
	return t.ToDataFrame()
}

// Normalize produces the canonical form of a table under the config:
// the row index is replaced with the dense 0..n-1 sequence when
// drop_index is set, and column labels are replaced with positional
// placeholders when ignore_column_names is set. A zero-column table is
// never renamed. Normalization is idempotent and never mutates its input.
func Normalize(t *tabular.Table, cfg *Config) *tabular.Table {
	normalized := ToTabular(t)
	if cfg.DropIndex() {
		normalized = normalized.ResetIndex()
	}
	if cfg.IgnoreColumnNames() && normalized.NumCols() > 0 {
		normalized, _ = normalized.RenameColumns(positionalColumns(normalized.NumCols()))
	}
	return normalized
}

// positionalColumns builds the placeholder labels col_0..col_{n-1}.
func positionalColumns(n int) []string {
	columns := make([]string, n)
	for i := range columns {
		columns[i] = fmt.Sprintf("col_%d", i)
	}
	return columns
}
