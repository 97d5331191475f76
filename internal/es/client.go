// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package es holds the Elasticsearch client and the paged log source
// built on top of it.
package es

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client wraps the Elasticsearch client with an index pattern.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// Config holds connection settings for New.
type Config struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
	APIKey    string
}

// New creates an Elasticsearch client for the given addresses and index
// pattern.
func New(cfg Config) (*Client, error) {
	escfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
	}

	esc, err := elasticsearch.NewClient(escfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "logs"
	}
	return &Client{es: esc, index: index}, nil
}

// SetIndex changes the index pattern.
func (c *Client) SetIndex(index string) {
	c.index = index
}

// Index returns the current index pattern.
func (c *Client) Index() string {
	return c.index
}

// Ping checks if Elasticsearch is reachable.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping ES: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ES ping failed: %s", res.Status())
	}
	return nil
}
