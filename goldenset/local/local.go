//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file storage manager implementation for
// the golden dataset.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/evalforge/tabeval/goldenset"
	"github.com/evalforge/tabeval/log"
)

const (
	defaultTempFileSuffix = ".tmp"
	defaultDirPermission  = 0o755
	defaultFilePermission = 0o644
)

// manager implements goldenset.Manager backed by a single JSON document on
// the local filesystem. Each operation is a full read-modify-write of the
// document; the manager serializes its own goroutines but assumes
// single-writer access across processes.
type manager struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New creates a local file golden dataset manager.
func New(opt ...goldenset.Option) goldenset.Manager {
	opts := goldenset.NewOptions(opt...)
	return &manager{
		path: opts.Path,
		now:  opts.Now,
	}
}

// Read loads the document. A missing file yields the default empty
// structure rather than an error.
func (m *manager) Read(_ context.Context) (*goldenset.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("load golden dataset %s: %w", m.path, err)
	}
	return doc, nil
}

// Upsert inserts or updates the entry keyed by the request question id,
// re-sorts the entries and rewrites the whole document.
func (m *manager) Upsert(_ context.Context, req *goldenset.UpsertRequest) error {
	if req == nil {
		return errors.New("upsert request is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.load()
	if err != nil {
		return fmt.Errorf("load golden dataset %s: %w", m.path, err)
	}
	if err := doc.Upsert(req, m.now()); err != nil {
		return fmt.Errorf("upsert entry %s: %w", req.QuestionID, err)
	}
	if err := m.store(doc); err != nil {
		return fmt.Errorf("store golden dataset %s: %w", m.path, err)
	}
	return nil
}

// Load returns the entry for the question id. A missing entry is logged
// and reported as goldenset.ErrEntryNotFound; it is an expected condition
// during dataset construction.
func (m *manager) Load(_ context.Context, questionID string) (*goldenset.Entry, error) {
	if questionID == "" {
		return nil, errors.New("question id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("load golden dataset %s: %w", m.path, err)
	}
	entry := doc.Find(questionID)
	if entry == nil {
		log.Infof("golden dataset entry %s not found in %s", questionID, m.path)
		return nil, goldenset.NotFoundError(questionID)
	}
	return entry, nil
}

// Clear resets the document to the default empty structure, timestamped at
// the moment of clearing.
func (m *manager) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := goldenset.DefaultDocument()
	doc.Reset(m.now())
	if err := m.store(doc); err != nil {
		return fmt.Errorf("store golden dataset %s: %w", m.path, err)
	}
	return nil
}

// load loads the document from the file system.
func (m *manager) load() (*goldenset.Document, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return goldenset.DefaultDocument(), nil
		}
		return nil, fmt.Errorf("read file %s: %w", m.path, err)
	}
	var doc goldenset.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", m.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = []*goldenset.Entry{}
	}
	return &doc, nil
}

// store stores the document to the file system, whole-document, via a
// temp file and rename.
func (m *manager) store(doc *goldenset.Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, defaultDirPermission); err != nil {
		return fmt.Errorf("mkdir all %s: %w", dir, err)
	}
	tmp := m.path + defaultTempFileSuffix
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, defaultFilePermission)
	if err != nil {
		return fmt.Errorf("open file %s: %w", tmp, err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("rename file %s to %s: %w", tmp, m.path, err)
	}
	return nil
}
