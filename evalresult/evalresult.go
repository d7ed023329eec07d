//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package evalresult provides per-example evaluation results and their
// suite-level aggregation.
package evalresult

import "github.com/evalforge/tabeval/goldenset"

// TextOutcome represents the outcome of the LLM-judged text comparison.
type TextOutcome int

const (
	// TextSkipped means no text comparison was performed.
	TextSkipped TextOutcome = iota
	// TextMatched means the judge accepted the candidate text.
	TextMatched
	// TextMismatched means the judge rejected the candidate text.
	TextMismatched
)

// String returns the string representation of the text outcome.
func (o TextOutcome) String() string {
	switch o {
	case TextMatched:
		return "matched"
	case TextMismatched:
		return "mismatched"
	default:
		return "skipped"
	}
}

// Result is the outcome for a single evaluation example. It is created
// once per run and never mutated; the aggregator is its only consumer.
type Result struct {
	// QuestionID identifies the golden dataset entry.
	QuestionID string `json:"question_id"`
	// QuestionDifficulty grades the question.
	QuestionDifficulty goldenset.Difficulty `json:"question_difficulty"`
	// IsCorrect reports whether the example passed overall.
	IsCorrect bool `json:"is_correct"`
	// TabularScore is the table comparison score in [0,1].
	TabularScore float64 `json:"tabular_score"`
	// TextOutcome is the judged text comparison outcome.
	TextOutcome TextOutcome `json:"text_outcome"`
	// TextExplanation is the judge's explanation, when text was compared.
	TextExplanation string `json:"text_explanation,omitempty"`
	// VibeScore is the soft LLM-judged similarity score in [0,1].
	VibeScore float64 `json:"vibe_score"`
}
