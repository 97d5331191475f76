// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrollcat/scrollcat/internal/config"
	"github.com/scrollcat/scrollcat/internal/es"
	"github.com/scrollcat/scrollcat/internal/source"
)

var (
	searchService  string
	searchLevel    string
	searchLookback string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search logs and print matches to stdout",
	Long: `Runs a one-shot search against Elasticsearch and prints the matching
entries, newest first. The query uses ES query_string syntax; omit it to
match everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := ""
		if len(args) > 0 {
			text = args[0]
		}
		return runSearch(cmd.Context(), text)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchService, "service", "s", "", "filter by service name")
	searchCmd.Flags().StringVarP(&searchLevel, "level", "l", "", "filter by log level")
	searchCmd.Flags().StringVar(&searchLookback, "lookback", "", "restrict to recent entries, e.g. now-1h")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 100, "maximum entries to print")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print raw documents instead of formatted lines")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(parentCtx context.Context, text string) error {
	cfg, ok := config.FromContext(parentCtx)
	if !ok {
		return fmt.Errorf("configuration not loaded")
	}
	if searchLimit < 1 {
		return fmt.Errorf("limit must be positive, got %d", searchLimit)
	}

	escfg := es.Config{
		Addresses: []string{cfg.ES.URL},
		Index:     cfg.ES.Index,
	}
	if err := applyProfile(&escfg, &cfg); err != nil {
		return err
	}

	client, err := es.New(escfg)
	if err != nil {
		return fmt.Errorf("create ES client: %w", err)
	}

	src := es.NewSource(client, es.Query{
		Text:     text,
		Service:  searchService,
		Level:    searchLevel,
		Lookback: searchLookback,
	})

	ctx, cancel := context.WithTimeout(parentCtx, cfg.ES.Timeout)
	defer cancel()

	page, err := src.FetchPage(ctx, 1, searchLimit)
	if err != nil {
		return err
	}

	if text != "" {
		fmt.Printf("Found %d logs matching %q\n\n", page.Total, text)
	} else {
		fmt.Printf("Found %d logs\n\n", page.Total)
	}

	if searchJSON {
		for _, e := range page.Entries {
			fmt.Println(e.Raw)
		}
		return nil
	}

	width := detectTerminalWidth()
	for _, e := range page.Entries {
		line := formatSearchEntry(e)
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}
	return nil
}

func formatSearchEntry(e source.Entry) string {
	line := formatPlainEntry(e)
	if svc, ok := e.Fields["service"].(string); ok && svc != "" {
		line = line + "  (" + svc + ")"
	}
	return line
}
