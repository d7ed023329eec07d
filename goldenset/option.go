//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package goldenset

import "time"

// defaultPath is the default golden dataset file path.
const defaultPath = "golden_dataset.json"

// Options configure golden dataset managers.
type Options struct {
	Path string           // Path is the dataset file path.
	Now  func() time.Time // Now supplies write timestamps.
}

// NewOptions constructs Options with the default values.
func NewOptions(opts ...Option) *Options {
	options := &Options{
		Path: defaultPath,
		Now:  time.Now,
	}
	for _, o := range opts {
		o(options)
	}
	return options
}

// Option is a functional option for configuring a golden dataset manager.
type Option func(*Options)

// WithPath sets the dataset file path.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithTimeSource replaces the write timestamp source.
func WithTimeSource(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}
