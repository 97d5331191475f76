// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	osSignal "os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scrollcat/scrollcat/internal/config"
	"github.com/scrollcat/scrollcat/internal/diag"
	"github.com/scrollcat/scrollcat/internal/es"
	"github.com/scrollcat/scrollcat/internal/tui"
)

var browseLookback string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse an Elasticsearch index in the TUI",
	Long: `Opens the interactive viewer against an Elasticsearch index.

Pages of entries are fetched on demand as you scroll. Filters typed in the
TUI run server-side, so only matching entries travel over the wire.

Connection settings come from flags, SCROLLCAT_* env vars, or a named
profile ('scrollcat config set-profile').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context())
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseLookback, "lookback", "", "restrict to recent entries, e.g. now-1h (empty = all time)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(parentCtx context.Context) error {
	cfg, ok := config.FromContext(parentCtx)
	if !ok {
		return fmt.Errorf("configuration not loaded")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("browse needs an interactive terminal; pipe through 'scrollcat cat' for plain output")
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

	notifyCtx, stop := osSignal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(notifyCtx, cfg.ES.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		fmt.Println("Warning: could not reach Elasticsearch at", cfg.ES.URL)
		fmt.Println()
	}

	shipper, err := diag.New(diag.Config{
		Endpoint: cfg.Diag.Endpoint,
		Insecure: cfg.Diag.Insecure,
	})
	if err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	defer shipper.Close(context.Background())

	factory := func(f tui.Filters) tui.DataSource {
		return es.NewSource(client, es.Query{
			Text:     f.Text,
			Level:    f.Level,
			Lookback: browseLookback,
			SortAsc:  f.Ascending,
		})
	}

	model := tui.New(tui.Options{
		Factory:     factory,
		Diag:        shipper,
		ProfilePath: profileWatchPath(),
		List:        cfg.List,
		LoadTimeout: cfg.TUI.LoadTimeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(notifyCtx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// applyProfile overlays the active profile's connection settings, resolving
// ${ENV_VAR} credential references.
func applyProfile(escfg *es.Config, cfg *config.Config) error {
	profiles, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	prof, name := profiles.GetActiveProfile(profileFlag)
	if prof == nil {
		if profileFlag != "" {
			return fmt.Errorf("profile %q does not exist", profileFlag)
		}
		return nil
	}

	if prof.HasPlainTextCredentials() {
		fmt.Fprintln(os.Stderr, config.PlainTextCredentialWarning())
	}

	resolved, err := prof.Resolve()
	if err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}

	if resolved.Elasticsearch.URL != "" {
		escfg.Addresses = []string{resolved.Elasticsearch.URL}
	}
	if resolved.Elasticsearch.Index != "" {
		escfg.Index = resolved.Elasticsearch.Index
	}
	escfg.APIKey = resolved.Elasticsearch.APIKey
	escfg.Username = resolved.Elasticsearch.Username
	escfg.Password = resolved.Elasticsearch.Password

	if resolved.Diag.Endpoint != "" {
		cfg.Diag.Endpoint = resolved.Diag.Endpoint
	}
	if resolved.Diag.Insecure != nil {
		cfg.Diag.Insecure = *resolved.Diag.Insecure
	}
	return nil
}

// profileWatchPath returns the profile config path when the file exists, so
// the TUI can watch it for changes.
func profileWatchPath() string {
	path, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
