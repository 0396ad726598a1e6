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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mythras-eg/ttable/core/columns"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	if cfg.Style.Table != "table-default" || cfg.Stripe.OddClass != "odd-default" {
		t.Errorf("unexpected style defaults: %+v %+v", cfg.Style, cfg.Stripe)
	}
	if !cfg.Sort.Enabled || !cfg.Sort.ResetNumbering || cfg.Sort.All {
		t.Errorf("unexpected sort defaults: %+v", cfg.Sort)
	}
	if cfg.Page.Enabled || cfg.Page.RowsPerPage != 10 {
		t.Errorf("unexpected page defaults: %+v", cfg.Page)
	}
	if cfg.Search.Enabled || cfg.Search.CaseSensitive || cfg.Search.InputID != "filter" {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.SeparatorRune() != ',' || cfg.CSV.Quoting != QuotingNone {
		t.Errorf("unexpected csv defaults: %+v", cfg.CSV)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := New(WithPagination(5), WithSearch(true), WithEditing(), WithSortType("Score", columns.SortDigit))
	if !cfg.Page.Enabled || cfg.Page.RowsPerPage != 5 {
		t.Errorf("pagination not applied: %+v", cfg.Page)
	}
	if !cfg.Search.Enabled || !cfg.Search.CaseSensitive || !cfg.Edit.Enabled {
		t.Errorf("options not applied: %+v %+v", cfg.Search, cfg.Edit)
	}
	if cfg.Sort.Types["Score"] != columns.SortDigit {
		t.Errorf("sort type not applied: %v", cfg.Sort.Types)
	}

	clone := cfg.Clone()
	clone.Sort.Types["Score"] = columns.SortDate
	if cfg.Sort.Types["Score"] != columns.SortDigit {
		t.Error("Clone shares the Types map")
	}
}

func TestOverlay(t *testing.T) {
	cfg, err := Default().Overlay([]byte(`
page:
  enabled: true
  rows_per_page: 25
hover:
  body: false
sort:
  types:
    Score: digit
    Born: sort-date
csv:
  separator: ";"
  quoting: rfc4180
`))
	if err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if !cfg.Page.Enabled || cfg.Page.RowsPerPage != 25 {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.Hover.Body || !cfg.Hover.Head {
		t.Errorf("hover overlay should only change body: %+v", cfg.Hover)
	}
	want := map[string]columns.SortType{"Score": columns.SortDigit, "Born": columns.SortDate}
	if diff := cmp.Diff(want, cfg.Sort.Types); diff != "" {
		t.Errorf("sort types mismatch (-want +got):\n%s", diff)
	}
	if cfg.SeparatorRune() != ';' || cfg.CSV.Quoting != QuotingRFC4180 {
		t.Errorf("csv = %+v", cfg.CSV)
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		New(WithPagination(0)),
		New(WithCSV(";;", QuotingNone)),
		New(WithCSV(",", "excel")),
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttable.yaml")
	data := []byte(`
server:
  addr: ":9000"
  read_timeout: 3s
tables:
  - id: bestiary
    source: csv
    path: bestiary.csv
    widget:
      page:
        enabled: true
        rows_per_page: 4
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TTABLE_ADDR", "")

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout default lost: %v", cfg.Server.WriteTimeout)
	}
	if len(cfg.Tables) != 1 {
		t.Fatalf("tables = %+v", cfg.Tables)
	}
	wcfg, err := cfg.Tables[0].WidgetConfig()
	if err != nil {
		t.Fatalf("WidgetConfig: %v", err)
	}
	if !wcfg.Page.Enabled || wcfg.Page.RowsPerPage != 4 || !wcfg.Sort.Enabled {
		t.Errorf("widget config = %+v %+v", wcfg.Page, wcfg.Sort)
	}

	t.Setenv("TTABLE_ADDR", "0.0.0.0:1")
	cfg, err = LoadServerConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "0.0.0.0:1" {
		t.Errorf("env override ignored: %s", cfg.Server.Addr)
	}
}

func TestLoadServerConfigRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	data := []byte("tables:\n  - id: a\n  - id: a\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadServerConfig(path); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestFetchHosts(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Fetch.AllowedHosts = []string{"data.example.org"}
	cfg.Tables = []TablePreset{
		{ID: "a", Source: "csv", URL: "https://sheets.example.com/a.csv"},
		{ID: "b", Source: "csv", URL: "https://data.example.org/b.csv"},
		{ID: "c", Source: "csv", Path: "c.csv"},
	}
	want := []string{"data.example.org", "sheets.example.com"}
	if diff := cmp.Diff(want, cfg.FetchHosts()); diff != "" {
		t.Errorf("FetchHosts() mismatch (-want +got):\n%s", diff)
	}
	if got := DefaultServerConfig().FetchHosts(); len(got) != 0 {
		t.Errorf("default FetchHosts() = %v, want none", got)
	}
}
