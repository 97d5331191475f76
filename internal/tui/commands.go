// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/scrollcat/scrollcat/internal/source"
)

// snapshotPageSize is the page size used when re-reading a followed source
// after growth. Larger than the interactive page size so the refresh takes
// few round trips.
const snapshotPageSize = 500

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForGrowth blocks until the followed source reports appended entries.
func waitForGrowth(src *source.FileSource) tea.Cmd {
	return func() tea.Msg {
		<-src.Updates()
		return sourceGrewMsg{}
	}
}

// snapshotCmd re-reads the whole collection through the current pager, so any
// active client-side filter applies to the refreshed entries too.
func (m Model) snapshotCmd() tea.Cmd {
	pager := m.src.Pager()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var all []source.Entry
		for page := 1; ; page++ {
			p, err := pager.FetchPage(ctx, page, snapshotPageSize)
			if err != nil {
				return snapshotMsg{err: err}
			}
			all = append(all, p.Entries...)
			if len(p.Entries) < snapshotPageSize {
				return snapshotMsg{entries: all}
			}
		}
	}
}

// watchProfiles watches the profile config file and reports the next change.
// Returns a command that blocks on file events; the handler re-arms it.
func watchProfiles(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return profileWatchErrMsg{Err: fmt.Errorf("create watcher: %w", err)}
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return profileWatchErrMsg{Err: fmt.Errorf("watch %s: %w", path, err)}
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return profileWatchErrMsg{Err: fmt.Errorf("watcher closed")}
				}
				// Editors often replace the file instead of writing in place.
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return profileChangedMsg{Path: path}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return profileWatchErrMsg{Err: fmt.Errorf("watcher closed")}
				}
				return profileWatchErrMsg{Err: err}
			}
		}
	}
}
