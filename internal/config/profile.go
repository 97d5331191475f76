// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileConfig represents the top-level configuration file structure.
// Stored at ~/.config/scrollcat/config.yaml
type ProfileConfig struct {
	CurrentProfile string             `yaml:"current-profile,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile is a named set of connection settings.
type Profile struct {
	Elasticsearch ESProfile   `yaml:"elasticsearch,omitempty"`
	Diag          DiagProfile `yaml:"diag,omitempty"`
}

// ESProfile holds Elasticsearch connection settings for a profile.
// Credential fields support ${ENV_VAR} references.
type ESProfile struct {
	URL      string `yaml:"url,omitempty"`
	Index    string `yaml:"index,omitempty"`
	APIKey   string `yaml:"api-key,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DiagProfile holds diagnostics shipping settings for a profile.
type DiagProfile struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure *bool  `yaml:"insecure,omitempty"` // pointer distinguishes unset from false
}

// Default configuration directory and file names.
const (
	ConfigDirName  = "scrollcat"
	ConfigFileName = "config.yaml"
)

// ConfigDir returns the path to the scrollcat config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/scrollcat
func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadProfiles loads the profile configuration from disk.
// Returns an empty ProfileConfig if the file doesn't exist.
// Warns to stderr if file permissions are insecure.
func LoadProfiles() (*ProfileConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ProfileConfig{Profiles: make(map[string]Profile)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	checkFilePermissions(path)

	var cfg ProfileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	return &cfg, nil
}

// SaveProfiles writes the profile configuration to disk with 0600
// permissions, creating the config directory if needed.
func SaveProfiles(cfg *ProfileConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// GetProfile returns the named profile, or an error if it doesn't exist.
func (c *ProfileConfig) GetProfile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// SetProfile creates or updates a named profile.
func (c *ProfileConfig) SetProfile(name string, profile Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = profile
}

// DeleteProfile removes a named profile.
func (c *ProfileConfig) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return nil
}

// ListProfiles returns all profile names.
func (c *ProfileConfig) ListProfiles() []string {
	if len(c.Profiles) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

// GetActiveProfile returns the active profile: the flag value when set,
// otherwise current-profile from the config file. Returns nil and an empty
// name when no profile is active.
func (c *ProfileConfig) GetActiveProfile(profileFlag string) (*Profile, string) {
	name := profileFlag
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return nil, ""
	}
	p, err := c.GetProfile(name)
	if err != nil {
		return nil, ""
	}
	return &p, name
}

// envVarPattern matches ${VAR_NAME} patterns
var envVarPattern = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// IsEnvRef returns true if the string is an environment variable reference.
func IsEnvRef(s string) bool {
	return envVarPattern.MatchString(s)
}

// expandEnvVar expands a single ${VAR} reference. Non-references pass
// through unchanged.
func expandEnvVar(s string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(s)
	if len(matches) != 2 {
		return s, true
	}
	return os.LookupEnv(matches[1])
}

// Resolve returns a copy of the profile with all ${ENV_VAR} references
// expanded. Returns an error if any referenced variable is undefined.
func (p Profile) Resolve() (Profile, error) {
	resolved := p
	creds := []struct {
		name string
		src  string
		dst  *string
	}{
		{"api-key", p.Elasticsearch.APIKey, &resolved.Elasticsearch.APIKey},
		{"username", p.Elasticsearch.Username, &resolved.Elasticsearch.Username},
		{"password", p.Elasticsearch.Password, &resolved.Elasticsearch.Password},
	}
	for _, c := range creds {
		if !IsEnvRef(c.src) {
			continue
		}
		val, ok := expandEnvVar(c.src)
		if !ok {
			return Profile{}, fmt.Errorf("undefined environment variable in %s: %s", c.name, c.src)
		}
		*c.dst = val
	}
	return resolved, nil
}

// HasCredentials returns true if the profile contains any authentication
// credentials.
func (p Profile) HasCredentials() bool {
	return p.Elasticsearch.APIKey != "" ||
		p.Elasticsearch.Username != "" ||
		p.Elasticsearch.Password != ""
}

// HasPlainTextCredentials returns true if the profile contains credentials
// that are not environment variable references.
func (p Profile) HasPlainTextCredentials() bool {
	for _, v := range []string{p.Elasticsearch.APIKey, p.Elasticsearch.Username, p.Elasticsearch.Password} {
		if v != "" && !IsEnvRef(v) {
			return true
		}
	}
	return false
}

// checkFilePermissions warns to stderr if the config file has insecure permissions.
func checkFilePermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	mode := info.Mode().Perm()
	if mode&0077 != 0 { // group or world can read
		fmt.Fprintf(os.Stderr, "Warning: %s has permissions %04o, should be 0600 for security\n", path, mode)
	}
}

// MaskCredentials returns a copy of the profile with credentials masked for
// display. Environment variable references are shown as-is.
func (p Profile) MaskCredentials() Profile {
	masked := p
	for _, f := range []*string{&masked.Elasticsearch.APIKey, &masked.Elasticsearch.Username, &masked.Elasticsearch.Password} {
		if *f != "" && !IsEnvRef(*f) {
			*f = "****"
		}
	}
	return masked
}

// MaskAllCredentials returns a copy of the config with all profile
// credentials masked.
func (c ProfileConfig) MaskAllCredentials() ProfileConfig {
	masked := ProfileConfig{
		CurrentProfile: c.CurrentProfile,
		Profiles:       make(map[string]Profile),
	}
	for name, profile := range c.Profiles {
		masked.Profiles[name] = profile.MaskCredentials()
	}
	return masked
}

// String returns a YAML representation of the config with credentials masked.
func (c ProfileConfig) String() string {
	data, err := yaml.Marshal(c.MaskAllCredentials())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return strings.TrimSpace(string(data))
}

// PlainTextCredentialWarning returns a warning message for profiles that
// store credentials in plain text.
func PlainTextCredentialWarning() string {
	return "Warning: Storing credentials in plain text. Consider using environment\n" +
		"variable references (e.g., api-key: ${MY_API_KEY}) for better security."
}
