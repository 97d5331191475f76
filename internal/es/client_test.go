// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package es

import "testing"

func TestNewDefaultsIndex(t *testing.T) {
	c, err := New(Config{Addresses: []string{"http://localhost:9200"}})
	if err != nil {
		t.Fatal(err)
	}
	if c.Index() != "logs" {
		t.Errorf("Index() = %q, want logs", c.Index())
	}

	c.SetIndex("logs-*")
	if c.Index() != "logs-*" {
		t.Errorf("Index() = %q after SetIndex", c.Index())
	}
}

func TestNewSourceKeepsQuery(t *testing.T) {
	c, err := New(Config{Addresses: []string{"http://localhost:9200"}, Index: "traces"})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSource(c, Query{Text: "checkout", Level: "ERROR"})
	if s.Describe() != "traces" {
		t.Errorf("Describe() = %q, want traces", s.Describe())
	}
	if q := s.Query(); q.Text != "checkout" || q.Level != "ERROR" {
		t.Errorf("Query() = %+v", q)
	}
}
