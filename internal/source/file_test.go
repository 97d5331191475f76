// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_Paging(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 25)
	for i := range lines {
		lines[i] = fmt.Sprintf("2024-01-15 10:30:%02d INFO line %d", i, i)
	}
	path := writeLog(t, dir, "app.log", lines)

	src, err := NewFileSource(FileConfig{Paths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	ctx := context.Background()

	p1, err := src.FetchPage(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(p1.Entries) != 10 || p1.Total != 25 {
		t.Fatalf("page 1: %d entries, total %d; want 10, 25", len(p1.Entries), p1.Total)
	}
	if !strings.HasSuffix(p1.Entries[0].Message, "line 0") {
		t.Errorf("first entry = %q", p1.Entries[0].Message)
	}

	p3, err := src.FetchPage(ctx, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(p3.Entries) != 5 {
		t.Errorf("page 3 has %d entries, want 5 (short page)", len(p3.Entries))
	}
	if !strings.HasSuffix(p3.Entries[4].Message, "line 24") {
		t.Errorf("last entry = %q", p3.Entries[4].Message)
	}

	p4, err := src.FetchPage(ctx, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(p4.Entries) != 0 {
		t.Errorf("page past the end has %d entries, want 0", len(p4.Entries))
	}

	// Refetching a page is stable.
	again, err := src.FetchPage(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if again.Entries[0].ID != p1.Entries[0].ID {
		t.Errorf("refetched page 1 entry ID changed: %q vs %q", again.Entries[0].ID, p1.Entries[0].ID)
	}
}

func TestFileSource_GlobAndService(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "api-err.log", []string{"ERROR boom"})
	writeLog(t, dir, "worker.log", []string{"INFO tick"})

	src, err := NewFileSource(FileConfig{Paths: []string{filepath.Join(dir, "*.log")}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	page, err := src.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(page.Entries))
	}
	// Files are read in sorted order, so api-err.log comes first.
	if got := page.Entries[0].Fields["service"]; got != "api" {
		t.Errorf("entry 0 service = %v, want api", got)
	}
	if got := page.Entries[1].Fields["service"]; got != "worker" {
		t.Errorf("entry 1 service = %v, want worker", got)
	}
	if src.Describe() != "2 files" {
		t.Errorf("Describe() = %q", src.Describe())
	}
}

func TestFileSource_ServiceOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "whatever.log", []string{"INFO hello"})

	src, err := NewFileSource(FileConfig{Paths: []string{path}, Service: "payments"})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	page, err := src.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := page.Entries[0].Fields["service"]; got != "payments" {
		t.Errorf("service = %v, want payments", got)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src, err := NewFileSource(FileConfig{Paths: []string{"/nonexistent/nope.log"}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if _, err := src.FetchPage(context.Background(), 1, 10); err == nil {
		t.Fatal("FetchPage on a missing file succeeded")
	}
}

func TestFileSource_NoFiles(t *testing.T) {
	if _, err := NewFileSource(FileConfig{}); err == nil {
		t.Fatal("NewFileSource with no paths succeeded")
	}
}

func TestFileSource_InvalidPageRequest(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "a.log", []string{"INFO x"})
	src, err := NewFileSource(FileConfig{Paths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if _, err := src.FetchPage(context.Background(), 0, 10); err == nil {
		t.Error("page 0 accepted")
	}
	if _, err := src.FetchPage(context.Background(), 1, 0); err == nil {
		t.Error("size 0 accepted")
	}
}

func TestFileSource_FollowReportsUnknownTotal(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "grow.log", []string{"INFO one", "INFO two"})

	src, err := NewFileSource(FileConfig{Paths: []string{path}, Follow: true})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	page, err := src.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != TotalUnknown {
		t.Errorf("Total = %d, want TotalUnknown while following", page.Total)
	}
	if len(page.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(page.Entries))
	}
}
