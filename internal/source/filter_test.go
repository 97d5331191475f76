// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFilterLog(t *testing.T) string {
	t.Helper()
	lines := []string{
		"2024-01-15T10:00:00Z INFO starting up",
		"2024-01-15T10:00:01Z ERROR connection refused",
		"2024-01-15T10:00:02Z INFO listening on :8080",
		"2024-01-15T10:00:03Z ERROR connection reset",
		"2024-01-15T10:00:04Z WARN slow request",
	}
	path := filepath.Join(t.TempDir(), "api.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFiltered_LevelMatch(t *testing.T) {
	src, err := NewFileSource(FileConfig{Paths: []string{writeFilterLog(t)}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	f := NewFiltered(src, MatchLevel(LevelError))
	page, err := f.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Errorf("Total = %d, want 2", page.Total)
	}
	for _, e := range page.Entries {
		if e.Level != LevelError {
			t.Errorf("entry %q has level %s, want ERROR", e.Message, e.Level)
		}
	}
}

func TestFiltered_TextMatchPages(t *testing.T) {
	src, err := NewFileSource(FileConfig{Paths: []string{writeFilterLog(t)}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	f := NewFiltered(src, MatchText("connection"))
	page, err := f.FetchPage(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Entries) != 1 || page.Total != 2 {
		t.Fatalf("page 1: got %d entries total %d, want 1 entry total 2", len(page.Entries), page.Total)
	}
	if !strings.Contains(page.Entries[0].Message, "refused") {
		t.Errorf("first match = %q, want the refused line", page.Entries[0].Message)
	}

	page, err = f.FetchPage(context.Background(), 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Entries) != 0 {
		t.Errorf("page past the matches should be empty, got %d entries", len(page.Entries))
	}
}

func TestFiltered_NilMatchPassesAll(t *testing.T) {
	src, err := NewFileSource(FileConfig{Paths: []string{writeFilterLog(t)}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	f := NewFiltered(src, nil)
	page, err := f.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
	if f.Describe() != src.Describe()+" (filtered)" {
		t.Errorf("Describe() = %q", f.Describe())
	}
}

func TestMatchAll_CombinesMatchers(t *testing.T) {
	m := MatchAll(MatchLevel(LevelError), MatchText("refused"))
	if !m(Entry{Level: LevelError, Message: "connection refused"}) {
		t.Error("expected both-matcher entry to pass")
	}
	if m(Entry{Level: LevelError, Message: "connection reset"}) {
		t.Error("expected text mismatch to fail")
	}
	if MatchAll()(Entry{}) != true {
		t.Error("empty MatchAll should pass everything")
	}
}

func TestFileSource_SnapshotCopies(t *testing.T) {
	src, err := NewFileSource(FileConfig{Paths: []string{writeFilterLog(t)}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	snap, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 5 {
		t.Fatalf("Snapshot len = %d, want 5", len(snap))
	}
	snap[0].Message = "mutated"

	again, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again[0].Message == "mutated" {
		t.Error("Snapshot must copy entries, not share the backing slice")
	}
}
