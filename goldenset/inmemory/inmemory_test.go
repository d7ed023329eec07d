//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/tabeval/goldenset"
)

func strPtr(s string) *string {
	return &s
}

func TestReadEmpty(t *testing.T) {
	manager := New()
	doc, err := manager.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
	assert.Equal(t, "en", doc.Language)
}

func TestUpsertLoadClear(t *testing.T) {
	manager := New()
	ctx := context.Background()
	require.NoError(t, manager.Upsert(ctx, &goldenset.UpsertRequest{
		QuestionID: "q1",
		Text:       strPtr("answer"),
	}))

	entry, err := manager.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "answer", *entry.GroundTruth.Text)

	_, err = manager.Load(ctx, "q2")
	assert.ErrorIs(t, err, goldenset.ErrEntryNotFound)

	require.NoError(t, manager.Clear(ctx))
	doc, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
}

func TestReadReturnsClone(t *testing.T) {
	manager := New()
	ctx := context.Background()
	require.NoError(t, manager.Upsert(ctx, &goldenset.UpsertRequest{QuestionID: "q1"}))

	doc, err := manager.Read(ctx)
	require.NoError(t, err)
	doc.Entries[0].ResearchQuestion = "mutated by caller"

	reread, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, reread.Entries[0].ResearchQuestion)
}

func TestLoadReturnsClone(t *testing.T) {
	manager := New()
	ctx := context.Background()
	require.NoError(t, manager.Upsert(ctx, &goldenset.UpsertRequest{
		QuestionID: "q1",
		Text:       strPtr("original"),
	}))

	entry, err := manager.Load(ctx, "q1")
	require.NoError(t, err)
	*entry.GroundTruth.Text = "mutated"

	reloaded, err := manager.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "original", *reloaded.GroundTruth.Text)
}
