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

package datasources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) SourceType() string { return "counting" }

func (l *countingLoader) Load(_ context.Context, p config.TablePreset) (*tables.Table, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return tables.NewTable(p.ID, "A").AddRow(p.Path), nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestManagerLazyLoadingAndCaching(t *testing.T) {
	loader := &countingLoader{}
	manager := NewManager()
	manager.RegisterLoader(loader)
	manager.SetBaseDir("/data")

	if err := manager.AddPreset(config.TablePreset{ID: "t1", Title: "First", Source: "counting", Path: "a.csv"}); err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	if manager.IsLoaded("t1") {
		t.Error("t1 should not be loaded yet")
	}

	table, err := manager.LoadData(context.Background(), "t1")
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if got, want := table.Rows[0][0], filepath.Join("/data", "a.csv"); got != want {
		t.Errorf("resolved path = %q, want %q", got, want)
	}
	if table.Caption != "First" {
		t.Errorf("caption = %q, want %q", table.Caption, "First")
	}
	if !manager.IsLoaded("t1") {
		t.Error("t1 should be loaded now")
	}

	table2, err := manager.LoadData(context.Background(), "t1")
	if err != nil {
		t.Fatalf("LoadData (cached): %v", err)
	}
	if table2 != table {
		t.Error("expected cached table")
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1", loader.calls)
	}

	manager.InvalidateCache("t1")
	if _, err := manager.LoadData(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}
	if loader.calls != 2 {
		t.Errorf("loader called %d times after invalidation, want 2", loader.calls)
	}
}

func TestManagerErrors(t *testing.T) {
	boom := errors.New("boom")
	manager := NewManager()
	manager.RegisterLoader(&countingLoader{err: boom})

	if err := manager.AddPreset(config.TablePreset{Source: "counting"}); err == nil {
		t.Error("expected error for preset without id")
	}
	if err := manager.AddPreset(config.TablePreset{ID: "x", Source: "nope"}); err == nil {
		t.Error("expected error for unknown source type")
	}
	if err := manager.AddPreset(config.TablePreset{ID: "x", Source: "counting"}); err != nil {
		t.Fatal(err)
	}
	if err := manager.AddPreset(config.TablePreset{ID: "x", Source: "counting"}); err == nil {
		t.Error("expected error for duplicate id")
	}
	if _, err := manager.LoadData(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := manager.LoadData(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("LoadData error = %v, want wrapped boom", err)
	}
	if manager.IsLoaded("x") {
		t.Error("failed load must not be cached")
	}
}

func TestManagerPresetOrder(t *testing.T) {
	manager := NewManager()
	manager.RegisterLoader(NewCsvLoader(nil))
	manager.RegisterLoader(NewHTMLLoader())
	manager.RegisterLoader(NewXlsxLoader())
	for _, id := range []string{"c", "a", "b"} {
		if err := manager.AddPreset(config.TablePreset{ID: id, Source: SourceCSV}); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, manager.GetPresetIDs()); diff != "" {
		t.Errorf("GetPresetIDs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"csv", "html", "xlsx"}, manager.GetSourceTypes()); diff != "" {
		t.Errorf("GetSourceTypes mismatch (-want +got):\n%s", diff)
	}
}

func TestFileLoaders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "party.csv", "Name,HP\nOrc,12\nTroll,30\n")
	writeFile(t, dir, "page.html", `<html><body>
<table id="other"><tr><th>X</th></tr><tr><td>1</td></tr></table>
<table id="party"><tr><th>Name</th><th>HP</th></tr><tr><td>Orc</td><td>12</td></tr></table>
</body></html>`)

	manager := NewManager()
	manager.SetBaseDir(dir)
	manager.RegisterLoader(NewCsvLoader(nil))
	manager.RegisterLoader(NewHTMLLoader())

	presets := []config.TablePreset{
		{ID: "csv", Title: "Party", Source: SourceCSV, Path: "party.csv"},
		{ID: "html", Title: "Party", Source: SourceHTML, Path: "page.html", TableID: "party"},
		{ID: "first", Source: SourceHTML, Path: "page.html"},
		{ID: "remote", Source: SourceCSV, URL: "http://127.0.0.1:1/x.csv"},
	}
	for _, p := range presets {
		if err := manager.AddPreset(p); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		id      string
		headers []string
		rows    int
		wantErr bool
	}{
		{id: "csv", headers: []string{"Name", "HP"}, rows: 2},
		{id: "html", headers: []string{"Name", "HP"}, rows: 1},
		{id: "first", headers: []string{"X"}, rows: 1},
		{id: "remote", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			table, err := manager.LoadData(context.Background(), tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadData: %v", err)
			}
			if table.ID != tt.id {
				t.Errorf("ID = %q, want %q", table.ID, tt.id)
			}
			if diff := cmp.Diff(tt.headers, table.HeaderTexts()); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
			if len(table.Rows) != tt.rows {
				t.Errorf("rows = %d, want %d", len(table.Rows), tt.rows)
			}
		})
	}
}
