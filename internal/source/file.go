// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

const maxLineBytes = 1024 * 1024

// FileConfig holds file source configuration.
type FileConfig struct {
	Paths   []string // file paths or glob patterns
	Service string   // service name override; derived from filenames when empty
	Follow  bool     // keep tailing files for appended lines
}

// FileSource pages over log files. The files are read once on the first
// fetch; in follow mode each file is then tailed and appended lines extend
// the collection, so later pages pick them up.
type FileSource struct {
	files   []string
	service string
	follow  bool

	mu      sync.Mutex
	entries []Entry
	loaded  bool
	nextID  int

	tails   []*tail.Tail
	wg      sync.WaitGroup
	updates chan struct{}
	closed  bool
}

// NewFileSource expands the configured patterns and prepares a source over
// the matching files. Patterns that match nothing are kept as literal paths
// so a followed file can appear later.
func NewFileSource(cfg FileConfig) (*FileSource, error) {
	var files []string
	for _, pattern := range cfg.Paths {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to read")
	}
	sort.Strings(files)

	return &FileSource{
		files:   files,
		service: cfg.Service,
		follow:  cfg.Follow,
		updates: make(chan struct{}, 1),
	}, nil
}

// FetchPage returns the requested slice of parsed entries. The first call
// reads every file; in follow mode it also starts the tails.
func (s *FileSource) FetchPage(ctx context.Context, page, size int) (Page, error) {
	if page < 1 || size < 1 {
		return Page{}, fmt.Errorf("invalid page request: page=%d size=%d", page, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(); err != nil {
			return Page{}, err
		}
		s.loaded = true
	}

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	total := len(s.entries)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	out := Page{Entries: make([]Entry, end-start), Total: total}
	copy(out.Entries, s.entries[start:end])
	if s.follow {
		out.Total = TotalUnknown
	}
	return out, nil
}

// Describe returns a label like "server.log" or "3 files".
func (s *FileSource) Describe() string {
	if len(s.files) == 1 {
		return filepath.Base(s.files[0])
	}
	return fmt.Sprintf("%d files", len(s.files))
}

// Snapshot returns a copy of every entry loaded so far, reading the files
// first if no fetch has happened yet.
func (s *FileSource) Snapshot(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(); err != nil {
			return nil, err
		}
		s.loaded = true
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Following reports whether the source keeps tailing its files.
func (s *FileSource) Following() bool { return s.follow }

// Len returns the number of entries loaded so far.
func (s *FileSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Updates signals when followed files grew. The channel carries at most one
// pending signal; readers that miss intermediate growth still see the latest.
func (s *FileSource) Updates() <-chan struct{} {
	return s.updates
}

// Close stops all tails. Safe to call more than once.
func (s *FileSource) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	tails := s.tails
	s.tails = nil
	s.mu.Unlock()

	for _, t := range tails {
		t.Stop()
	}
	s.wg.Wait()
}

// loadLocked reads all files front to back and, in follow mode, starts a
// tail per file positioned at the end.
func (s *FileSource) loadLocked() error {
	for _, path := range s.files {
		service := s.service
		if service == "" {
			service = ServiceName(path)
		}

		if err := s.readFileLocked(path, service); err != nil {
			if os.IsNotExist(err) && s.follow {
				// The tail below picks the file up when it appears.
			} else if os.IsNotExist(err) {
				return fmt.Errorf("open %s: %w", path, err)
			} else {
				return err
			}
		}

		if !s.follow {
			continue
		}
		t, err := tail.TailFile(path, tail.Config{
			Follow:    true,
			ReOpen:    true, // survive rotation
			MustExist: false,
			Poll:      true,
			Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		})
		if err != nil {
			return fmt.Errorf("tail %s: %w", path, err)
		}
		s.tails = append(s.tails, t)
		s.wg.Add(1)
		go s.drainTail(t, path, service)
	}
	return nil
}

func (s *FileSource) readFileLocked(path, service string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		s.appendLocked(line, path, service)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func (s *FileSource) drainTail(t *tail.Tail, path, service string) {
	defer s.wg.Done()
	for line := range t.Lines {
		if line.Err != nil || line.Text == "" {
			continue
		}
		s.mu.Lock()
		s.appendLocked(line.Text, path, service)
		s.mu.Unlock()
		s.notify()
	}
}

func (s *FileSource) appendLocked(line, path, service string) {
	e := ParseEntry(line, path)
	if len(e.Fields) == 0 {
		e.Fields = map[string]any{}
	}
	if _, ok := e.Fields["service"]; !ok {
		e.Fields["service"] = service
	}
	e.ID = fmt.Sprintf("%s#%d", path, s.nextID)
	s.nextID++
	s.entries = append(s.entries, e)
}

func (s *FileSource) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
