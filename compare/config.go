//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package compare scores pairs of tables under a declarative comparison config.
package compare

import (
	"encoding/json"
	"fmt"
)

// Mode selects how two tables are compared.
type Mode string

const (
	// ModeExactMatch requires cell-for-cell equality after normalization.
	ModeExactMatch Mode = "exact_match"
	// ModeSortAndExactMatch sorts both sides by their first column before
	// requiring exact equality.
	ModeSortAndExactMatch Mode = "sort_and_exact_match"
	// ModeScoreOverlap scores the Jaccard similarity of unique row tuples.
	ModeScoreOverlap Mode = "score_overlap"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExactMatch, ModeSortAndExactMatch, ModeScoreOverlap:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown comparison mode %q", s)
	}
}

// Config is an immutable comparison configuration. It is created once per
// golden-dataset entry and read-only during comparison.
type Config struct {
	mode              Mode
	dropIndex         bool
	ignoreColumnNames bool
}

// ConfigOption configures Config construction.
type ConfigOption func(*Config)

// WithDropIndex controls whether row indexes are discarded before
// comparison. Defaults to true.
func WithDropIndex(drop bool) ConfigOption {
	return func(c *Config) {
		c.dropIndex = drop
	}
}

// WithIgnoreColumnNames controls whether column labels are replaced with
// positional placeholders before comparison. Defaults to false.
func WithIgnoreColumnNames(ignore bool) ConfigOption {
	return func(c *Config) {
		c.ignoreColumnNames = ignore
	}
}

// NewConfig constructs a Config, rejecting unrecognized modes. This is
// the only error condition.
func NewConfig(mode Mode, opt ...ConfigOption) (*Config, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	cfg := &Config{
		mode:              mode,
		dropIndex:         true,
		ignoreColumnNames: false,
	}
	for _, o := range opt {
		o(cfg)
	}
	return cfg, nil
}

// DefaultConfig returns the exact-match config with default options.
func DefaultConfig() *Config {
	cfg, _ := NewConfig(ModeExactMatch)
	return cfg
}

// Mode returns the comparison mode.
func (c *Config) Mode() Mode {
	return c.mode
}

// DropIndex reports whether row indexes are discarded before comparison.
func (c *Config) DropIndex() bool {
	return c.dropIndex
}

// IgnoreColumnNames reports whether column labels are ignored.
func (c *Config) IgnoreColumnNames() bool {
	return c.ignoreColumnNames
}

// configWire is the JSON shape of a comparison config.
type configWire struct {
	Mode              string `json:"mode"`
	DropIndex         bool   `json:"drop_index"`
	IgnoreColumnNames bool   `json:"ignore_column_names"`
}

// MarshalJSON encodes the config with its wire field names.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configWire{
		Mode:              string(c.mode),
		DropIndex:         c.dropIndex,
		IgnoreColumnNames: c.ignoreColumnNames,
	})
}

// UnmarshalJSON decodes and validates a config.
func (c *Config) UnmarshalJSON(data []byte) error {
	var wire configWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal comparison config: %w", err)
	}
	mode, err := ParseMode(wire.Mode)
	if err != nil {
		return err
	}
	c.mode = mode
	c.dropIndex = wire.DropIndex
	c.ignoreColumnNames = wire.IgnoreColumnNames
	return nil
}
