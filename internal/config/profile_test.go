// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileConfig_GetProfile(t *testing.T) {
	cfg := &ProfileConfig{
		Profiles: map[string]Profile{
			"test": {
				Elasticsearch: ESProfile{URL: "http://test:9200"},
			},
		},
	}

	p, err := cfg.GetProfile("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Elasticsearch.URL != "http://test:9200" {
		t.Errorf("URL = %q, want %q", p.Elasticsearch.URL, "http://test:9200")
	}

	if _, err := cfg.GetProfile("nonexistent"); err == nil {
		t.Error("expected error for non-existent profile")
	}
}

func TestProfileConfig_SetProfile(t *testing.T) {
	cfg := &ProfileConfig{}

	cfg.SetProfile("new", Profile{
		Elasticsearch: ESProfile{URL: "http://new:9200", Index: "logs-new-*"},
		Diag:          DiagProfile{Endpoint: "new:4318"},
	})

	p, err := cfg.GetProfile("new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Elasticsearch.URL != "http://new:9200" {
		t.Errorf("ES URL = %q", p.Elasticsearch.URL)
	}
	if p.Elasticsearch.Index != "logs-new-*" {
		t.Errorf("ES Index = %q", p.Elasticsearch.Index)
	}
	if p.Diag.Endpoint != "new:4318" {
		t.Errorf("Diag Endpoint = %q", p.Diag.Endpoint)
	}
}

func TestProfileConfig_DeleteProfile(t *testing.T) {
	cfg := &ProfileConfig{
		CurrentProfile: "test",
		Profiles: map[string]Profile{
			"test":  {Elasticsearch: ESProfile{URL: "http://test:9200"}},
			"other": {Elasticsearch: ESProfile{URL: "http://other:9200"}},
		},
	}

	if err := cfg.DeleteProfile("test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cfg.GetProfile("test"); err == nil {
		t.Error("expected error after delete")
	}
	if cfg.CurrentProfile != "" {
		t.Errorf("CurrentProfile = %q, want empty", cfg.CurrentProfile)
	}
	if err := cfg.DeleteProfile("nonexistent"); err == nil {
		t.Error("expected error for non-existent profile")
	}
}

func TestProfileConfig_GetActiveProfile(t *testing.T) {
	cfg := &ProfileConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Elasticsearch: ESProfile{URL: "http://default:9200"}},
			"staging": {Elasticsearch: ESProfile{URL: "http://staging:9200"}},
		},
	}

	// Flag beats current-profile.
	p, name := cfg.GetActiveProfile("staging")
	if name != "staging" || p == nil || p.Elasticsearch.URL != "http://staging:9200" {
		t.Errorf("GetActiveProfile(staging) = %v, %q", p, name)
	}

	// No flag falls back to current-profile.
	p, name = cfg.GetActiveProfile("")
	if name != "default" || p == nil {
		t.Errorf("GetActiveProfile(\"\") = %v, %q", p, name)
	}

	// Unknown name yields no profile.
	if p, name := cfg.GetActiveProfile("missing"); p != nil || name != "" {
		t.Errorf("GetActiveProfile(missing) = %v, %q", p, name)
	}
}

func TestProfile_Resolve(t *testing.T) {
	t.Setenv("SCROLLCAT_TEST_KEY", "secret-value")

	p := Profile{
		Elasticsearch: ESProfile{
			APIKey:   "${SCROLLCAT_TEST_KEY}",
			Username: "plain-user",
		},
	}

	resolved, err := p.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Elasticsearch.APIKey != "secret-value" {
		t.Errorf("APIKey = %q, want expanded value", resolved.Elasticsearch.APIKey)
	}
	if resolved.Elasticsearch.Username != "plain-user" {
		t.Errorf("Username = %q, want untouched", resolved.Elasticsearch.Username)
	}

	missing := Profile{
		Elasticsearch: ESProfile{Password: "${SCROLLCAT_DEFINITELY_UNSET}"},
	}
	if _, err := missing.Resolve(); err == nil {
		t.Error("expected error for undefined env var")
	}
}

func TestProfile_MaskCredentials(t *testing.T) {
	p := Profile{
		Elasticsearch: ESProfile{
			APIKey:   "plain-secret",
			Username: "${USER_REF}",
			Password: "",
		},
	}

	masked := p.MaskCredentials()
	if masked.Elasticsearch.APIKey != "****" {
		t.Errorf("APIKey = %q, want masked", masked.Elasticsearch.APIKey)
	}
	if masked.Elasticsearch.Username != "${USER_REF}" {
		t.Errorf("Username = %q, env refs should show as-is", masked.Elasticsearch.Username)
	}
	if masked.Elasticsearch.Password != "" {
		t.Errorf("Password = %q, empty stays empty", masked.Elasticsearch.Password)
	}
}

func TestProfile_HasPlainTextCredentials(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected bool
	}{
		{"no credentials", Profile{}, false},
		{
			"env ref only",
			Profile{Elasticsearch: ESProfile{APIKey: "${KEY}"}},
			false,
		},
		{
			"plain password",
			Profile{Elasticsearch: ESProfile{Password: "hunter2"}},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.HasPlainTextCredentials(); got != tc.expected {
				t.Errorf("HasPlainTextCredentials() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestLoadSaveProfiles_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Missing file yields an empty config.
	cfg, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles on missing file: %v", err)
	}
	if len(cfg.Profiles) != 0 {
		t.Errorf("fresh config has %d profiles", len(cfg.Profiles))
	}

	cfg.SetProfile("local", Profile{
		Elasticsearch: ESProfile{URL: "http://localhost:9200", Index: "logs-*"},
		Diag:          DiagProfile{Endpoint: "localhost:4318"},
	})
	cfg.CurrentProfile = "local"

	if err := SaveProfiles(cfg); err != nil {
		t.Fatalf("SaveProfiles: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %04o, want 0600", perm)
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("config dir = %q", filepath.Dir(path))
	}

	loaded, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles after save: %v", err)
	}
	if loaded.CurrentProfile != "local" {
		t.Errorf("CurrentProfile = %q", loaded.CurrentProfile)
	}
	p, err := loaded.GetProfile("local")
	if err != nil {
		t.Fatal(err)
	}
	if p.Elasticsearch.URL != "http://localhost:9200" || p.Diag.Endpoint != "localhost:4318" {
		t.Errorf("round-tripped profile = %+v", p)
	}
}

func TestProfileConfig_StringMasks(t *testing.T) {
	cfg := ProfileConfig{
		Profiles: map[string]Profile{
			"prod": {Elasticsearch: ESProfile{APIKey: "super-secret"}},
		},
	}

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Errorf("String() leaked credentials:\n%s", s)
	}
	if !strings.Contains(s, "****") {
		t.Errorf("String() missing mask:\n%s", s)
	}
}
