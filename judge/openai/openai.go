//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible judge model implementation.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"github.com/evalforge/tabeval/judge"
)

// Model calls an OpenAI-compatible chat completion endpoint. Responses are
// requested non-streaming at temperature 0 so judge verdicts stay as
// stable as the model allows.
type Model struct {
	client openai.Client
	name   string
}

type options struct {
	apiKey  string
	baseURL string
}

// Option configures the judge model client.
type Option func(*options)

// WithAPIKey sets the API key explicitly instead of reading the
// environment.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// New constructs a judge model for the named chat model.
func New(name string, opt ...Option) *Model {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	clientOpts := []openaiopt.RequestOption{}
	if opts.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(opts.baseURL))
	}
	return &Model{
		client: openai.NewClient(clientOpts...),
		name:   name,
	}
}

// Generate sends the prompt messages and returns the response text.
func (m *Model) Generate(ctx context.Context, messages []judge.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(m.name),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		Temperature: openai.Float(0),
	}
	for _, msg := range messages {
		switch msg.Role {
		case judge.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}
	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}
