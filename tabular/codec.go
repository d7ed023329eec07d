//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

package tabular

import (
	"encoding/json"
	"fmt"
)

// envelope is the interchange JSON wrapper with a kind discriminator.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// dataframePayload carries a two-dimensional table in split orientation.
type dataframePayload struct {
	Columns []string `json:"columns"`
	Index   []any    `json:"index"`
	Data    [][]any  `json:"data"`
}

// seriesPayload carries a one-dimensional table.
type seriesPayload struct {
	Name  string `json:"name"`
	Index []any  `json:"index"`
	Data  []any  `json:"data"`
}

// MarshalJSON encodes the table in the interchange format. The round-trip
// is lossless for the canonical cell types.
func (t *Table) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindSeries:
		values := make([]any, len(t.rows))
		for i, row := range t.rows {
			values[i] = row[0]
		}
		data, err := json.Marshal(seriesPayload{
			Name:  t.name,
			Index: t.index,
			Data:  values,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal series payload: %w", err)
		}
		return json.Marshal(envelope{Type: string(KindSeries), Data: data})
	case KindDataFrame:
		data, err := json.Marshal(dataframePayload{
			Columns: t.columns,
			Index:   t.index,
			Data:    t.rows,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal dataframe payload: %w", err)
		}
		return json.Marshal(envelope{Type: string(KindDataFrame), Data: data})
	default:
		return nil, fmt.Errorf("unknown table kind %q", t.kind)
	}
}

// UnmarshalJSON decodes the interchange format, validating the shape and
// cell types. Any loss of fidelity is a hard error.
func (t *Table) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal interchange envelope: %w", err)
	}
	switch Kind(env.Type) {
	case KindDataFrame:
		var payload dataframePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return fmt.Errorf("unmarshal dataframe payload: %w", err)
		}
		opts := []Option{}
		if payload.Index != nil {
			opts = append(opts, WithIndex(payload.Index))
		}
		if payload.Columns == nil {
			payload.Columns = []string{}
		}
		decoded, err := New(payload.Columns, payload.Data, opts...)
		if err != nil {
			return fmt.Errorf("decode dataframe: %w", err)
		}
		*t = *decoded
		return nil
	case KindSeries:
		var payload seriesPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return fmt.Errorf("unmarshal series payload: %w", err)
		}
		opts := []Option{}
		if payload.Index != nil {
			opts = append(opts, WithIndex(payload.Index))
		}
		decoded, err := FromSeries(payload.Name, payload.Data, opts...)
		if err != nil {
			return fmt.Errorf("decode series: %w", err)
		}
		*t = *decoded
		return nil
	default:
		return fmt.Errorf("unknown interchange type %q", env.Type)
	}
}
