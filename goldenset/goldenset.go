//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package goldenset provides the golden dataset of reference answers that
// agent output is graded against.
package goldenset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/evalforge/tabeval/compare"
	"github.com/evalforge/tabeval/tabular"
)

// ErrEntryNotFound signals that no entry exists for a question id. Looking
// up a not-yet-created entry is routine during dataset curation, so
// callers should treat it as a recoverable condition via errors.Is.
var ErrEntryNotFound = errors.New("golden dataset entry not found")

// Difficulty grades how hard a research question is.
type Difficulty string

const (
	// DifficultyEasy marks an easy question.
	DifficultyEasy Difficulty = "Easy"
	// DifficultyHard marks a hard question.
	DifficultyHard Difficulty = "Hard"
)

// Metadata carries the unique key for an entry.
type Metadata struct {
	// QuestionID uniquely identifies the entry within the dataset.
	QuestionID string `json:"question_id"`
}

// GroundTruth is the reference answer for a question.
type GroundTruth struct {
	// Text is the expected free-text answer, or null when there is none.
	Text *string `json:"text"`
	// TabularObjects are the expected tables in interchange form.
	TabularObjects []*tabular.Table `json:"pandas_objects_json"`
}

// Entry is one question with its reference answer and comparison config.
type Entry struct {
	// ResearchQuestion is the question posed to the agent under test.
	ResearchQuestion string `json:"research_question"`
	// QuestionDifficulty grades the question.
	QuestionDifficulty Difficulty `json:"question_difficulty"`
	// Metadata carries the unique question id.
	Metadata Metadata `json:"metadata"`
	// GroundTruth is the reference answer.
	GroundTruth *GroundTruth `json:"ground_truth"`
	// ComparisonConfig selects how candidate tables are compared.
	ComparisonConfig *compare.Config `json:"pandas_comparison_config"`
}

// Document is the persisted golden dataset. It is always emitted with
// entries sorted by question id ascending.
type Document struct {
	// GeneratedAt is the ISO-8601 timestamp of the last write.
	GeneratedAt string `json:"generated_at"`
	// TotalQuestions is the number of entries.
	TotalQuestions int `json:"total_questions"`
	// Language of the dataset.
	Language string `json:"language"`
	// Entries are the evaluation entries sorted by question id.
	Entries []*Entry `json:"evaluation_entries"`
}

// DefaultDocument returns the empty dataset structure.
func DefaultDocument() *Document {
	return &Document{
		GeneratedAt:    "",
		TotalQuestions: 0,
		Language:       "en",
		Entries:        []*Entry{},
	}
}

// UpsertRequest describes an entry upsert keyed by question id.
// ResearchQuestion, QuestionDifficulty and Text always overwrite the
// stored entry; TabularObjects and ComparisonConfig are applied only when
// non-nil, enabling partial updates.
type UpsertRequest struct {
	QuestionID         string
	ResearchQuestion   string
	QuestionDifficulty Difficulty
	Text               *string
	TabularObjects     []*tabular.Table
	ComparisonConfig   *compare.Config
}

// Manager defines CRUD over the golden dataset document. Implementations
// assume single-writer access; concurrent writers can lose updates.
type Manager interface {
	// Read loads the document, returning the default empty structure when
	// it does not exist yet.
	Read(ctx context.Context) (*Document, error)
	// Upsert inserts or updates the entry keyed by the request question id
	// and rewrites the whole document.
	Upsert(ctx context.Context, req *UpsertRequest) error
	// Load returns the entry for the question id, or ErrEntryNotFound.
	Load(ctx context.Context, questionID string) (*Entry, error)
	// Clear resets the document to the default empty structure.
	Clear(ctx context.Context) error
}

// Find returns the entry with the given question id, or nil.
func (d *Document) Find(questionID string) *Entry {
	for _, entry := range d.Entries {
		if entry.Metadata.QuestionID == questionID {
			return entry
		}
	}
	return nil
}

// Upsert applies the request to the document in place, re-sorts the
// entries by question id and refreshes the document metadata.
func (d *Document) Upsert(req *UpsertRequest, now time.Time) error {
	if req == nil {
		return errors.New("upsert request is nil")
	}
	if req.QuestionID == "" {
		return errors.New("question id is empty")
	}
	entry := d.Find(req.QuestionID)
	if entry == nil {
		entry = &Entry{
			Metadata:         Metadata{QuestionID: req.QuestionID},
			GroundTruth:      &GroundTruth{},
			ComparisonConfig: compare.DefaultConfig(),
		}
		d.Entries = append(d.Entries, entry)
	}
	if entry.GroundTruth == nil {
		entry.GroundTruth = &GroundTruth{}
	}
	entry.ResearchQuestion = req.ResearchQuestion
	entry.QuestionDifficulty = req.QuestionDifficulty
	entry.GroundTruth.Text = req.Text
	if req.TabularObjects != nil {
		entry.GroundTruth.TabularObjects = req.TabularObjects
	}
	if req.ComparisonConfig != nil {
		entry.ComparisonConfig = req.ComparisonConfig
	}
	d.refresh(now)
	return nil
}

// Reset restores the default empty structure, stamped at the given time.
func (d *Document) Reset(now time.Time) {
	*d = *DefaultDocument()
	d.GeneratedAt = Timestamp(now)
}

// refresh re-sorts entries and updates document metadata after a write.
func (d *Document) refresh(now time.Time) {
	sort.Slice(d.Entries, func(i, j int) bool {
		return d.Entries[i].Metadata.QuestionID < d.Entries[j].Metadata.QuestionID
	})
	d.TotalQuestions = len(d.Entries)
	d.GeneratedAt = Timestamp(now)
}

// Timestamp formats a write time the way the document records it.
func Timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

// NotFoundError wraps ErrEntryNotFound with the question id.
func NotFoundError(questionID string) error {
	return fmt.Errorf("entry %s: %w", questionID, ErrEntryNotFound)
}
