//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const vibeSystemPrompt = `You are a lenient grader. You rate how close a candidate answer is to a reference answer in meaning, on a scale from 0.0 (unrelated) to 1.0 (equivalent).
Respond with a single JSON object of the form {"score": <number between 0 and 1>, "explanation": "<one sentence>"} and nothing else.`

const vibeUserPromptFormat = `Reference answer:
%s

Candidate answer:
%s

How close is the candidate answer to the reference answer?`

// VibeComparator produces a soft LLM-judged similarity score in [0,1],
// used as a secondary signal alongside the exact comparison modes.
type VibeComparator struct {
	model      Model
	maxRetries int
	retryDelay sleepDuration
	sleep      sleepFunc
}

// NewVibeComparator constructs a vibe comparator over the given judge model.
func NewVibeComparator(model Model, opt ...Option) (*VibeComparator, error) {
	if model == nil {
		return nil, errors.New("judge model is nil")
	}
	opts := newOptions(opt...)
	return &VibeComparator{
		model:      model,
		maxRetries: opts.maxRetries,
		retryDelay: opts.retryDelay,
		sleep:      opts.sleep,
	}, nil
}

// Score rates candidate against reference. Two empty texts score 1.0 and
// one-sided emptiness scores 0.0, without a model call. The returned
// string is the judge's explanation.
func (c *VibeComparator) Score(ctx context.Context, reference, candidate string) (float64, string, error) {
	if reference == "" && candidate == "" {
		return 1.0, "both texts are empty", nil
	}
	if reference == "" || candidate == "" {
		return 0.0, "exactly one text is empty", nil
	}
	messages := []Message{
		{Role: RoleSystem, Content: vibeSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf(vibeUserPromptFormat, reference, candidate)},
	}
	var score float64
	var explanation string
	err := generateWithRetry(ctx, c.model, messages, c.maxRetries, c.retryDelay, c.sleep, func(raw string) error {
		parsedScore, parsedExplanation, err := parseScore(raw)
		if err != nil {
			return err
		}
		score = parsedScore
		explanation = parsedExplanation
		return nil
	})
	if err != nil {
		return 0.0, "", err
	}
	return score, explanation, nil
}

// scoreWire detects a missing score field.
type scoreWire struct {
	Score       *float64 `json:"score"`
	Explanation string   `json:"explanation"`
}

func parseScore(raw string) (float64, string, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return 0, "", err
	}
	var wire scoreWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return 0, "", fmt.Errorf("unmarshal score: %w", err)
	}
	if wire.Score == nil {
		return 0, "", errors.New("score response is missing the score field")
	}
	return clamp01(*wire.Score), wire.Explanation, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
