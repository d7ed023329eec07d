//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package evalresult

import (
	"math"

	"github.com/evalforge/tabeval/goldenset"
)

// Summary holds the suite-level statistics derived from a result
// collection. It has no persistent identity and is recomputed from
// scratch each run. Rates are rounded to 3 decimals for reporting; the
// raw per-example scores stay unrounded.
type Summary struct {
	// PassRate is the fraction of examples that passed.
	PassRate float64 `json:"pass_rate"`
	// TabularScoreAvg is the mean table comparison score.
	TabularScoreAvg float64 `json:"tabular_score_avg"`
	// TextPassRate is the pass rate over examples where text was compared,
	// or null when none were.
	TextPassRate *float64 `json:"text_pass_rate"`
	// VibeScoreAvg is the mean vibe score.
	VibeScoreAvg float64 `json:"vibe_score_avg"`
	// PassRateEasy is the pass rate over easy questions, or null when the
	// suite has none.
	PassRateEasy *float64 `json:"pass_rate_easy"`
	// PassRateHard is the pass rate over hard questions, or null when the
	// suite has none.
	PassRateHard *float64 `json:"pass_rate_hard"`
}

// Summarize reduces a result collection into suite-level statistics. An
// empty collection yields zero rates and null subset rates, never a
// division by zero.
func Summarize(results []*Result) *Summary {
	summary := &Summary{}
	if len(results) == 0 {
		return summary
	}
	passed := 0
	tabularTotal := 0.0
	vibeTotal := 0.0
	textCompared := 0
	textPassed := 0
	for _, result := range results {
		if result.IsCorrect {
			passed++
		}
		tabularTotal += result.TabularScore
		vibeTotal += result.VibeScore
		if result.TextOutcome != TextSkipped {
			textCompared++
			if result.TextOutcome == TextMatched {
				textPassed++
			}
		}
	}
	summary.PassRate = round3(float64(passed) / float64(len(results)))
	summary.TabularScoreAvg = round3(tabularTotal / float64(len(results)))
	summary.VibeScoreAvg = round3(vibeTotal / float64(len(results)))
	if textCompared > 0 {
		summary.TextPassRate = rate(textPassed, textCompared)
	}
	summary.PassRateEasy = difficultyPassRate(results, goldenset.DifficultyEasy)
	summary.PassRateHard = difficultyPassRate(results, goldenset.DifficultyHard)
	return summary
}

// difficultyPassRate computes the pass rate over the subset with the given
// difficulty, or nil when that subset is empty.
func difficultyPassRate(results []*Result, difficulty goldenset.Difficulty) *float64 {
	total := 0
	passed := 0
	for _, result := range results {
		if result.QuestionDifficulty != difficulty {
			continue
		}
		total++
		if result.IsCorrect {
			passed++
		}
	}
	if total == 0 {
		return nil
	}
	return rate(passed, total)
}

func rate(passed, total int) *float64 {
	r := round3(float64(passed) / float64(total))
	return &r
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
