//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/evalforge/tabeval/evalresult"
	"github.com/evalforge/tabeval/goldenset"
)

type entryEvalParam struct {
	idx     int
	ctx     context.Context
	target  Target
	entry   *goldenset.Entry
	runner  *Runner
	results []*evalresult.Result
	errs    []error
	wg      *sync.WaitGroup
}

func (p *entryEvalParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.target = nil
	p.entry = nil
	p.runner = nil
	p.results = nil
	p.errs = nil
	p.wg = nil
}

var entryEvalParamPool = &sync.Pool{
	New: func() any { return new(entryEvalParam) },
}

func createEntryEvalPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*entryEvalParam)
		if !ok {
			panic("entry eval pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			entryEvalParamPool.Put(param)
		}()
		param.results[param.idx], param.errs[param.idx] =
			param.runner.evaluateEntry(param.ctx, param.target, param.entry)
	})
	if err != nil {
		return nil, fmt.Errorf("create entry eval pool: %w", err)
	}
	return pool, nil
}
