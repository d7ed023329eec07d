//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package clone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string         `json:"name"`
	Values []any          `json:"values"`
	Nested map[string]any `json:"nested"`
}

func TestCloneIsDeep(t *testing.T) {
	src := &payload{
		Name:   "original",
		Values: []any{float64(1), "x", nil},
		Nested: map[string]any{"key": "value"},
	}
	dst, err := Clone(src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)

	dst.Name = "mutated"
	dst.Values[0] = float64(99)
	dst.Nested["key"] = "changed"
	assert.Equal(t, "original", src.Name)
	assert.Equal(t, float64(1), src.Values[0])
	assert.Equal(t, "value", src.Nested["key"])
}

func TestCloneNil(t *testing.T) {
	_, err := Clone[payload](nil)
	assert.Error(t, err)
}
