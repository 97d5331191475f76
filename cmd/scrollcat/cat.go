// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	osSignal "os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scrollcat/scrollcat/internal/config"
	"github.com/scrollcat/scrollcat/internal/diag"
	"github.com/scrollcat/scrollcat/internal/source"
	"github.com/scrollcat/scrollcat/internal/tui"
)

var catCmd = &cobra.Command{
	Use:   "cat <file> [file...]",
	Short: "View local log files in the TUI",
	Long: `Opens the interactive viewer over one or more local log files.

Files are parsed line by line; JSON lines get level and timestamp
extraction, everything else is kept as plain text. Glob patterns work.
With --follow appended lines show up live, like tail -f.

When stdout is not a terminal the entries are printed plainly instead,
so 'scrollcat cat app.log | grep ...' behaves as expected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCat(cmd.Context(), args)
	},
}

func init() {
	catCmd.Flags().Bool("follow", false, "keep tailing files for appended lines (env: SCROLLCAT_FILES_FOLLOW)")
	catCmd.Flags().String("service", "", "service name override for all entries (env: SCROLLCAT_FILES_SERVICE)")
	rootCmd.AddCommand(catCmd)
}

func runCat(parentCtx context.Context, paths []string) error {
	cfg, ok := config.FromContext(parentCtx)
	if !ok {
		return fmt.Errorf("configuration not loaded")
	}

	src, err := source.NewFileSource(source.FileConfig{
		Paths:   paths,
		Service: cfg.Files.Service,
		Follow:  cfg.Files.Follow,
	})
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		defer src.Close()
		return printEntries(parentCtx, src)
	}

	shipper, err := diag.New(diag.Config{
		Endpoint: cfg.Diag.Endpoint,
		Insecure: cfg.Diag.Insecure,
	})
	if err != nil {
		src.Close()
		return fmt.Errorf("diagnostics: %w", err)
	}
	defer shipper.Close(context.Background())

	// Filters run client-side over the loaded entries. The base source is
	// returned unfiltered so follow-mode growth paging stays cheap.
	factory := func(f tui.Filters) tui.DataSource {
		if f.Text == "" && f.Level == "" {
			return src
		}
		var matchers []source.MatchFunc
		if f.Text != "" {
			matchers = append(matchers, source.MatchText(f.Text))
		}
		if f.Level != "" {
			matchers = append(matchers, source.MatchLevel(source.Level(f.Level)))
		}
		return source.NewFiltered(src, source.MatchAll(matchers...))
	}

	opts := tui.Options{
		Factory:     factory,
		Diag:        shipper,
		List:        cfg.List,
		LoadTimeout: cfg.TUI.LoadTimeout,
	}
	if src.Following() {
		opts.Follow = src
	}

	notifyCtx, stop := osSignal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithContext(notifyCtx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// printEntries writes every loaded entry as a plain line, for piped output.
func printEntries(ctx context.Context, src *source.FileSource) error {
	entries, err := src.Snapshot(ctx)
	if err != nil {
		return err
	}
	width := detectTerminalWidth()
	for _, e := range entries {
		line := formatPlainEntry(e)
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}
	return nil
}

func formatPlainEntry(e source.Entry) string {
	ts := ""
	if !e.Timestamp.IsZero() {
		ts = e.Timestamp.Format("2006-01-02T15:04:05") + " "
	}
	level := ""
	if e.Level != "" && e.Level != source.LevelUnknown {
		level = "[" + string(e.Level) + "] "
	}
	return ts + level + e.Message
}

// detectTerminalWidth returns the stderr terminal width, falling back to the
// COLUMNS env var. Zero means unknown; callers then skip truncation.
func detectTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		return w
	}
	if env := os.Getenv("COLUMNS"); env != "" {
		if val, err := strconv.Atoi(env); err == nil && val > 0 {
			return val
		}
	}
	return 0
}
