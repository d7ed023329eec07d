//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package judge scores free-text answers with an external LLM judge.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/evalforge/tabeval/log"
)

// Role constants for judge messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single prompt message for the judge model.
type Message struct {
	Role    string
	Content string
}

// Model is the judge model contract: prompt messages in, response text out.
type Model interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Verdict is the parsed judge decision for a text comparison.
type Verdict struct {
	IsMatch     bool   `json:"is_match"`
	Explanation string `json:"explanation"`
}

const textSystemPrompt = `You are a strict grader. You compare a candidate answer against a reference answer and decide whether they convey the same information.
Respond with a single JSON object of the form {"is_match": true|false, "explanation": "<one sentence>"} and nothing else.`

const textUserPromptFormat = `Reference answer:
%s

Candidate answer:
%s

Do the candidate and reference answers convey the same information?`

// TextComparator judges semantic equivalence of two texts. It is a
// judgment oracle, not a deterministic function: identical inputs may
// yield different verdicts across runs.
type TextComparator struct {
	model      Model
	maxRetries int
	retryDelay sleepDuration
	sleep      sleepFunc
}

// NewTextComparator constructs a text comparator over the given judge model.
func NewTextComparator(model Model, opt ...Option) (*TextComparator, error) {
	if model == nil {
		return nil, errors.New("judge model is nil")
	}
	opts := newOptions(opt...)
	return &TextComparator{
		model:      model,
		maxRetries: opts.maxRetries,
		retryDelay: opts.retryDelay,
		sleep:      opts.sleep,
	}, nil
}

// Compare judges whether candidate conveys the same information as
// reference. Two empty texts match trivially and one-sided emptiness is a
// trivial mismatch; neither issues a model call.
func (c *TextComparator) Compare(ctx context.Context, reference, candidate string) (*Verdict, error) {
	if reference == "" && candidate == "" {
		return &Verdict{IsMatch: true, Explanation: "both texts are empty"}, nil
	}
	if reference == "" || candidate == "" {
		return &Verdict{IsMatch: false, Explanation: "exactly one text is empty"}, nil
	}
	messages := []Message{
		{Role: RoleSystem, Content: textSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf(textUserPromptFormat, reference, candidate)},
	}
	var verdict Verdict
	err := generateWithRetry(ctx, c.model, messages, c.maxRetries, c.retryDelay, c.sleep, func(raw string) error {
		parsed, err := parseVerdict(raw)
		if err != nil {
			return err
		}
		verdict = *parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

// verdictWire detects a missing is_match field, which a plain bool cannot.
type verdictWire struct {
	IsMatch     *bool  `json:"is_match"`
	Explanation string `json:"explanation"`
}

func parseVerdict(raw string) (*Verdict, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var wire verdictWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("unmarshal verdict: %w", err)
	}
	if wire.IsMatch == nil {
		return nil, errors.New("verdict is missing the is_match field")
	}
	return &Verdict{IsMatch: *wire.IsMatch, Explanation: wire.Explanation}, nil
}

// extractJSON strips markdown fences and repairs malformed JSON so that
// slightly off-format judge output still parses.
func extractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if json.Valid([]byte(content)) {
		return content, nil
	}
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return "", fmt.Errorf("repair judge output: %w", err)
	}
	return repaired, nil
}

// generateWithRetry runs the generate-and-parse loop with a bounded number
// of additional attempts and a fixed delay between them. The failure mode
// is almost always a formatting problem rather than a transient outage, so
// there is no backoff. The exhaustion error carries the last raw response
// for diagnosability.
func generateWithRetry(ctx context.Context, model Model, messages []Message,
	maxRetries int, delay sleepDuration, sleep sleepFunc, parse func(raw string) error) error {
	var lastRaw string
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			sleep(delay)
		}
		raw, err := model.Generate(ctx, messages)
		if err != nil {
			return fmt.Errorf("judge model generate: %w", err)
		}
		if err := parse(raw); err != nil {
			lastRaw = raw
			lastErr = err
			log.Debugf("judge response parse failed on attempt %d: %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("parse judge response after %d attempts: %w; last raw response: %q",
		maxRetries+1, lastErr, lastRaw)
}
