//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package goldenset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/tabeval/compare"
	"github.com/evalforge/tabeval/tabular"
)

func strPtr(s string) *string {
	return &s
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	assert.Equal(t, "", doc.GeneratedAt)
	assert.Equal(t, 0, doc.TotalQuestions)
	assert.Equal(t, "en", doc.Language)
	assert.Empty(t, doc.Entries)
	assert.NotNil(t, doc.Entries)
}

func TestUpsertInsertsWithDefaults(t *testing.T) {
	doc := DefaultDocument()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err := doc.Upsert(&UpsertRequest{
		QuestionID:         "q1",
		ResearchQuestion:   "What was the 2024 revenue?",
		QuestionDifficulty: DifficultyEasy,
		Text:               strPtr("42 million"),
	}, now)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	entry := doc.Entries[0]
	assert.Equal(t, "q1", entry.Metadata.QuestionID)
	assert.Equal(t, DifficultyEasy, entry.QuestionDifficulty)
	assert.Equal(t, "42 million", *entry.GroundTruth.Text)
	// Comparison config defaults to exact match when unspecified.
	assert.Equal(t, compare.ModeExactMatch, entry.ComparisonConfig.Mode())
	assert.Equal(t, 1, doc.TotalQuestions)
	assert.Equal(t, "2025-06-01T12:00:00Z", doc.GeneratedAt)
}

func TestUpsertOverwritesAndPreservesUnsuppliedFields(t *testing.T) {
	doc := DefaultDocument()
	table, err := tabular.New([]string{"A"}, [][]any{{1}})
	require.NoError(t, err)
	cfg, err := compare.NewConfig(compare.ModeScoreOverlap)
	require.NoError(t, err)
	require.NoError(t, doc.Upsert(&UpsertRequest{
		QuestionID:       "q1",
		ResearchQuestion: "first question",
		Text:             strPtr("A"),
		TabularObjects:   []*tabular.Table{table},
		ComparisonConfig: cfg,
	}, time.Now()))

	// Second upsert without tables or config: those fields stay untouched.
	require.NoError(t, doc.Upsert(&UpsertRequest{
		QuestionID:       "q1",
		ResearchQuestion: "second question",
		Text:             strPtr("B"),
	}, time.Now()))

	require.Len(t, doc.Entries, 1)
	entry := doc.Entries[0]
	assert.Equal(t, "second question", entry.ResearchQuestion)
	assert.Equal(t, "B", *entry.GroundTruth.Text)
	require.Len(t, entry.GroundTruth.TabularObjects, 1)
	assert.True(t, table.Equal(entry.GroundTruth.TabularObjects[0]))
	assert.Equal(t, compare.ModeScoreOverlap, entry.ComparisonConfig.Mode())
}

func TestUpsertSortsByQuestionID(t *testing.T) {
	doc := DefaultDocument()
	for _, id := range []string{"q3", "q1", "q2"} {
		require.NoError(t, doc.Upsert(&UpsertRequest{QuestionID: id}, time.Now()))
	}
	ids := make([]string, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		ids = append(ids, entry.Metadata.QuestionID)
	}
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids)
	assert.Equal(t, 3, doc.TotalQuestions)
}

func TestUpsertRejectsEmptyQuestionID(t *testing.T) {
	doc := DefaultDocument()
	assert.Error(t, doc.Upsert(&UpsertRequest{}, time.Now()))
	assert.Error(t, doc.Upsert(nil, time.Now()))
}

func TestFind(t *testing.T) {
	doc := DefaultDocument()
	require.NoError(t, doc.Upsert(&UpsertRequest{QuestionID: "q1"}, time.Now()))
	assert.NotNil(t, doc.Find("q1"))
	assert.Nil(t, doc.Find("q2"))
}

func TestReset(t *testing.T) {
	doc := DefaultDocument()
	require.NoError(t, doc.Upsert(&UpsertRequest{QuestionID: "q1"}, time.Now()))
	now := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
	doc.Reset(now)
	assert.Empty(t, doc.Entries)
	assert.Equal(t, 0, doc.TotalQuestions)
	assert.Equal(t, "2025-06-02T08:30:00Z", doc.GeneratedAt)
}
