//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package runner

import "github.com/evalforge/tabeval/judge"

// defaultParallelism evaluates entries serially unless configured.
const defaultParallelism = 1

type options struct {
	text        *judge.TextComparator
	vibe        *judge.VibeComparator
	parallelism int
}

func newOptions(opt ...Option) *options {
	opts := &options{
		parallelism: defaultParallelism,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a functional option for configuring the runner.
type Option func(*options)

// WithTextComparator enables LLM-judged text comparison. Without it, text
// comparison is reported as skipped.
func WithTextComparator(text *judge.TextComparator) Option {
	return func(o *options) {
		o.text = text
	}
}

// WithVibeComparator enables the soft LLM-judged similarity score.
func WithVibeComparator(vibe *judge.VibeComparator) Option {
	return func(o *options) {
		o.vibe = vibe
	}
}

// WithParallelism sets how many entries are evaluated concurrently.
// Defaults to serial evaluation.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
