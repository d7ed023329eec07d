//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package runner evaluates a target against the golden dataset and rolls
// the per-example results up into a report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"

	"github.com/evalforge/tabeval/compare"
	"github.com/evalforge/tabeval/evalresult"
	"github.com/evalforge/tabeval/goldenset"
	"github.com/evalforge/tabeval/judge"
	"github.com/evalforge/tabeval/log"
	"github.com/evalforge/tabeval/tabular"
)

// Answer is a candidate answer produced by the target under test.
type Answer struct {
	// Text is the free-text part of the answer.
	Text string
	// Tables are the tabular parts of the answer, positionally matched
	// against the reference tables.
	Tables []*tabular.Table
}

// Target is the agent under test: question in, candidate answer out.
type Target interface {
	Answer(ctx context.Context, question string) (*Answer, error)
}

// Report is the outcome of one suite run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string
	// Results holds the per-example outcomes, one per evaluated entry.
	Results []*evalresult.Result
	// Summary holds the suite-level statistics.
	Summary *evalresult.Summary
}

// Runner evaluates every golden dataset entry against a target. The table
// comparison itself is pure and lock-free; entries only share the judge
// comparators, which are safe for concurrent use.
type Runner struct {
	set         goldenset.Manager
	text        *judge.TextComparator
	vibe        *judge.VibeComparator
	parallelism int
	pool        *ants.PoolWithFunc
}

// New returns a runner over the given golden dataset manager.
func New(set goldenset.Manager, opt ...Option) (*Runner, error) {
	if set == nil {
		return nil, errors.New("golden dataset manager is nil")
	}
	opts := newOptions(opt...)
	if opts.parallelism <= 0 {
		return nil, errors.New("parallelism must be greater than 0")
	}
	runner := &Runner{
		set:         set,
		text:        opts.text,
		vibe:        opts.vibe,
		parallelism: opts.parallelism,
	}
	if runner.parallelism > 1 {
		pool, err := createEntryEvalPool(runner.parallelism)
		if err != nil {
			return nil, fmt.Errorf("create entry eval pool: %w", err)
		}
		runner.pool = pool
	}
	return runner, nil
}

// Close releases owned resources.
func (r *Runner) Close() error {
	if r.pool != nil {
		r.pool.Release()
	}
	return nil
}

// Run evaluates every entry of the dataset against the target. Failures
// of individual entries are collected and returned alongside the report;
// they do not abort the remaining entries.
func (r *Runner) Run(ctx context.Context, target Target) (*Report, error) {
	if target == nil {
		return nil, errors.New("target is nil")
	}
	doc, err := r.set.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read golden dataset: %w", err)
	}
	results := make([]*evalresult.Result, len(doc.Entries))
	errs := make([]error, len(doc.Entries))
	if r.pool != nil {
		var wg sync.WaitGroup
		for i, entry := range doc.Entries {
			wg.Add(1)
			param := entryEvalParamPool.Get().(*entryEvalParam)
			param.idx = i
			param.ctx = ctx
			param.target = target
			param.entry = entry
			param.runner = r
			param.results = results
			param.errs = errs
			param.wg = &wg
			if err := r.pool.Invoke(param); err != nil {
				wg.Done()
				errs[i] = fmt.Errorf("invoke entry eval pool: %w", err)
			}
		}
		wg.Wait()
	} else {
		for i, entry := range doc.Entries {
			results[i], errs[i] = r.evaluateEntry(ctx, target, entry)
		}
	}
	report := &Report{RunID: uuid.NewString()}
	var runErr *multierror.Error
	for i, result := range results {
		if errs[i] != nil {
			runErr = multierror.Append(runErr,
				fmt.Errorf("entry %s: %w", doc.Entries[i].Metadata.QuestionID, errs[i]))
			continue
		}
		report.Results = append(report.Results, result)
	}
	report.Summary = evalresult.Summarize(report.Results)
	log.Infof("evaluation run %s finished: %d entries, pass rate %.3f",
		report.RunID, len(report.Results), report.Summary.PassRate)
	return report, runErr.ErrorOrNil()
}

// evaluateEntry grades a single entry: table comparison always, text and
// vibe judging only when a judge and a reference text are present.
func (r *Runner) evaluateEntry(ctx context.Context, target Target,
	entry *goldenset.Entry) (*evalresult.Result, error) {
	answer, err := target.Answer(ctx, entry.ResearchQuestion)
	if err != nil {
		return nil, fmt.Errorf("target answer: %w", err)
	}
	if answer == nil {
		return nil, errors.New("target answer is nil")
	}
	cfg := entry.ComparisonConfig
	if cfg == nil {
		cfg = compare.DefaultConfig()
	}
	var reference []*tabular.Table
	var referenceText *string
	if entry.GroundTruth != nil {
		reference = entry.GroundTruth.TabularObjects
		referenceText = entry.GroundTruth.Text
	}
	result := &evalresult.Result{
		QuestionID:         entry.Metadata.QuestionID,
		QuestionDifficulty: entry.QuestionDifficulty,
		TabularScore:       scoreTables(reference, answer.Tables, cfg),
		TextOutcome:        evalresult.TextSkipped,
	}
	if r.text != nil && referenceText != nil {
		verdict, err := r.text.Compare(ctx, *referenceText, answer.Text)
		if err != nil {
			return nil, fmt.Errorf("text comparison: %w", err)
		}
		result.TextOutcome = evalresult.TextMismatched
		if verdict.IsMatch {
			result.TextOutcome = evalresult.TextMatched
		}
		result.TextExplanation = verdict.Explanation
	}
	if r.vibe != nil && referenceText != nil {
		score, _, err := r.vibe.Score(ctx, *referenceText, answer.Text)
		if err != nil {
			return nil, fmt.Errorf("vibe score: %w", err)
		}
		result.VibeScore = score
	}
	result.IsCorrect = result.TabularScore == 1.0 &&
		result.TextOutcome != evalresult.TextMismatched
	return result, nil
}

// scoreTables averages the comparison score over positionally paired
// tables. Unpaired tables on either side score zero; two empty lists are
// a vacuous full match.
func scoreTables(reference, candidate []*tabular.Table, cfg *compare.Config) float64 {
	if len(reference) == 0 && len(candidate) == 0 {
		return 1.0
	}
	pairs := len(reference)
	if len(candidate) > pairs {
		pairs = len(candidate)
	}
	total := 0.0
	for i := 0; i < len(reference) && i < len(candidate); i++ {
		total += compare.Compare(candidate[i], reference[i], cfg)
	}
	return total / float64(pairs)
}
