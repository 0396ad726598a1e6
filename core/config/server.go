/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The ttable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the top-level configuration of the widget server.
type ServerConfig struct {
	Server ListenConfig  `yaml:"server"`
	Log    LogConfig     `yaml:"log"`
	Fetch  FetchConfig   `yaml:"fetch"`
	Tables []TablePreset `yaml:"tables"`
}

// ListenConfig controls the HTTP listener.
type ListenConfig struct {
	Addr         string        `yaml:"addr"`          // default "127.0.0.1:8097"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default 30s
	Demo         bool          `yaml:"demo"`          // default true, registers the demo tables
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`  // default "info"
	Format string `yaml:"format"` // "console" (default) or "json"
}

// FetchConfig bounds remote CSV and REST requests.
type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"`   // default 15s
	MaxBytes int64         `yaml:"max_bytes"` // default 8 MiB
	RestBase string        `yaml:"rest_base"` // base URL of the /rest API, empty disables the search source
	// AllowedHosts lists the hosts remote CSVs may be loaded from. The
	// hosts of preset urls are always allowed.
	AllowedHosts []string `yaml:"allowed_hosts"`
}

// FetchHosts returns the allowed hosts plus the host of every preset url.
func (c *ServerConfig) FetchHosts() []string {
	hosts := slices.Clone(c.Fetch.AllowedHosts)
	for _, p := range c.Tables {
		if p.URL == "" {
			continue
		}
		if u, err := url.Parse(p.URL); err == nil && u.Host != "" && !slices.Contains(hosts, u.Host) {
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}

// TablePreset registers a table at startup.
type TablePreset struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Source  string `yaml:"source"`   // "csv", "html" or "search"
	Path    string `yaml:"path"`     // file path for csv and html
	URL     string `yaml:"url"`      // remote CSV
	TableID string `yaml:"table_id"` // element id inside an html source
	Query   string `yaml:"query"`    // search string for the search source
	// Widget is a YAML overlay on the default widget Config.
	Widget yaml.Node `yaml:"widget"`
}

// WidgetConfig returns the preset's widget configuration.
func (p TablePreset) WidgetConfig() (Config, error) {
	cfg := Default()
	if p.Widget.Kind == 0 {
		return cfg, nil
	}
	out := cfg.Clone()
	if err := p.Widget.Decode(&out); err != nil {
		return cfg, fmt.Errorf("config: table %q: %w", p.ID, err)
	}
	if err := out.Validate(); err != nil {
		return cfg, fmt.Errorf("config: table %q: %w", p.ID, err)
	}
	return out, nil
}

// DefaultServerConfig returns the server defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ListenConfig{
			Addr:         "127.0.0.1:8097",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			Demo:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Fetch: FetchConfig{
			Timeout:  15 * time.Second,
			MaxBytes: 8 << 20,
		},
	}
}

// LoadServerConfig reads the YAML config at path on top of the defaults.
// An empty path yields the defaults. TTABLE_ADDR overrides server.addr.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	if addr := os.Getenv("TTABLE_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	seen := make(map[string]bool)
	for _, p := range cfg.Tables {
		if p.ID == "" {
			return nil, fmt.Errorf("config: table preset without id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("config: duplicate table id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return cfg, nil
}
