//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package judge

import "time"

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

type sleepDuration = time.Duration

// sleepFunc blocks for the given duration. Injectable for tests.
type sleepFunc func(time.Duration)

type options struct {
	maxRetries int
	retryDelay time.Duration
	sleep      sleepFunc
}

func newOptions(opt ...Option) *options {
	opts := &options{
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		sleep:      time.Sleep,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures judge comparators.
type Option func(*options)

// WithMaxRetries sets the number of additional attempts after a parse
// failure. Defaults to 3.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// WithRetryDelay sets the fixed delay between attempts. Defaults to 1s.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		o.retryDelay = d
	}
}

// WithSleep replaces the sleep function used between retry attempts.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) {
		o.sleep = sleep
	}
}
