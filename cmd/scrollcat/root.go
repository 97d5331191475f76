// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scrollcat/scrollcat/internal/config"
)

// Global flags shared across commands.
// Values are bound via Viper; variables keep Cobra compatibility.
var (
	esURL              string
	esIndex            string
	timeoutFlag        time.Duration
	pingTimeoutFlag    time.Duration
	itemHeightFlag     int
	overscanFlag       int
	loadThresholdFlag  float64
	pageSizeFlag       int
	scrollDebounceFlag time.Duration
	diagEndpointFlag   string
	diagInsecureFlag   bool
	loadTimeoutFlag    time.Duration
	profileFlag        string
)

var rootCmd = &cobra.Command{
	Use:   "scrollcat",
	Short: "Virtualized log browser for Elasticsearch and local files",
	Long: `Scrollcat - Scroll through large log collections without loading them all.

Entries are fetched page by page as you scroll; only the visible rows are
rendered. Browse an Elasticsearch index with 'scrollcat browse', or local
files with 'scrollcat cat'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	// Global flags (Viper precedence: flags > env > defaults)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&esURL, "es-url", config.DefaultESURL, "Elasticsearch URL (env: SCROLLCAT_ES_URL)")
	pf.StringVarP(&esIndex, "index", "i", config.DefaultIndex, "Elasticsearch index/data stream pattern (env: SCROLLCAT_ES_INDEX)")
	pf.DurationVar(&timeoutFlag, "timeout", config.DefaultTimeout, "Elasticsearch query timeout (env: SCROLLCAT_ES_TIMEOUT)")
	pf.DurationVar(&pingTimeoutFlag, "ping-timeout", config.DefaultPingTimeout, "Elasticsearch ping timeout (env: SCROLLCAT_ES_PING_TIMEOUT)")

	pf.IntVar(&itemHeightFlag, "item-height", config.DefaultItemHeight, "default row height in terminal rows (env: SCROLLCAT_LIST_ITEM_HEIGHT)")
	pf.IntVar(&overscanFlag, "overscan", config.DefaultOverscan, "extra rows mounted beyond each visible edge (env: SCROLLCAT_LIST_OVERSCAN)")
	pf.Float64Var(&loadThresholdFlag, "load-threshold", config.DefaultLoadThreshold, "scroll fraction that triggers the next page (env: SCROLLCAT_LIST_LOAD_THRESHOLD)")
	pf.IntVar(&pageSizeFlag, "page-size", config.DefaultPageSize, "entries per fetched page (env: SCROLLCAT_LIST_PAGE_SIZE)")
	pf.DurationVar(&scrollDebounceFlag, "scroll-debounce", config.DefaultScrollDebounce, "idle window before the scrolling flag clears (env: SCROLLCAT_LIST_SCROLL_DEBOUNCE)")

	pf.StringVar(&diagEndpointFlag, "diag-endpoint", "", "OTLP HTTP endpoint for diagnostic logs, empty disables (env: SCROLLCAT_DIAG_ENDPOINT)")
	pf.BoolVar(&diagInsecureFlag, "diag-insecure", true, "use plain HTTP for the diagnostics endpoint (env: SCROLLCAT_DIAG_INSECURE)")
	pf.DurationVar(&loadTimeoutFlag, "load-timeout", config.DefaultLoadTimeout, "per-page fetch timeout in the TUI (env: SCROLLCAT_TUI_LOAD_TIMEOUT)")

	pf.StringVar(&profileFlag, "profile", "", "connection profile to use (overrides current-profile)")
}
