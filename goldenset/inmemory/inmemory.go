//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for the
// golden dataset.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/evalforge/tabeval/goldenset"
	"github.com/evalforge/tabeval/internal/clone"
	"github.com/evalforge/tabeval/log"
)

// manager implements goldenset.Manager using in-memory storage.
//
// The manager keeps an in-memory copy of the document. Each API returns
// deep-cloned objects to avoid accidental mutation by callers.
type manager struct {
	mu  sync.RWMutex
	doc *goldenset.Document
	now func() time.Time
}

// New creates a new in-memory golden dataset manager.
func New(opt ...goldenset.Option) goldenset.Manager {
	opts := goldenset.NewOptions(opt...)
	return &manager{
		doc: goldenset.DefaultDocument(),
		now: opts.Now,
	}
}

// Read returns a deep copy of the document.
func (m *manager) Read(_ context.Context) (*goldenset.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cloned, err := clone.Clone(m.doc)
	if err != nil {
		return nil, fmt.Errorf("clone golden dataset: %w", err)
	}
	return cloned, nil
}

// Upsert inserts or updates the entry keyed by the request question id.
func (m *manager) Upsert(_ context.Context, req *goldenset.UpsertRequest) error {
	if req == nil {
		return errors.New("upsert request is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.doc.Upsert(req, m.now()); err != nil {
		return fmt.Errorf("upsert entry %s: %w", req.QuestionID, err)
	}
	return nil
}

// Load returns a deep copy of the entry for the question id, or
// goldenset.ErrEntryNotFound.
func (m *manager) Load(_ context.Context, questionID string) (*goldenset.Entry, error) {
	if questionID == "" {
		return nil, errors.New("question id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry := m.doc.Find(questionID)
	if entry == nil {
		log.Infof("golden dataset entry %s not found", questionID)
		return nil, goldenset.NotFoundError(questionID)
	}
	cloned, err := clone.Clone(entry)
	if err != nil {
		return nil, fmt.Errorf("clone entry %s: %w", questionID, err)
	}
	return cloned, nil
}

// Clear resets the document to the default empty structure.
func (m *manager) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Reset(m.now())
	return nil
}
