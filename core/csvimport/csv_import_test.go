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

package csvimport

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

func TestFromCSV(t *testing.T) {
	tbl, err := FromCSV("people", "name,age,city\nAlice,30,New York\nBob,25\nCarol,35,Chicago,extra\n", ",", config.QuotingNone)
	if err != nil {
		t.Fatalf("failed to convert CSV: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "age", "city"}, tbl.HeaderTexts()); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"Alice", "30", "New York"},
		{"Bob", "25"},
		{"Carol", "35", "Chicago"},
	}
	if diff := cmp.Diff(want, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCSVEdgeCases(t *testing.T) {
	if _, err := FromCSV("t", "", ",", config.QuotingNone); !errors.Is(err, ErrEmptyCSV) {
		t.Errorf("empty input error = %v, want ErrEmptyCSV", err)
	}

	tbl, err := FromCSV("t", "a;b\r\n1;2\r\n", ";", config.QuotingNone)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"1", "2"}}, tbl.Rows); diff != "" {
		t.Errorf("CRLF rows mismatch (-want +got):\n%s", diff)
	}

	tbl, err = FromCSV("t", "a,b\n\"x,y\",2\n", ",", config.QuotingRFC4180)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"x,y", "2"}}, tbl.Rows); diff != "" {
		t.Errorf("quoted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		sep     string
		quoting config.Quoting
		text    string
	}{
		{"comma", ",", config.QuotingNone, "Name,Score\nBob,10\nAnn,20\n"},
		{"tab", "\t", config.QuotingNone, "Name\tScore\nBob\t10\n"},
		{"rfc4180", ",", config.QuotingRFC4180, "Name,Motto\nBob,\"fast, loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := FromCSV("t", tt.text, tt.sep, tt.quoting)
			if err != nil {
				t.Fatal(err)
			}
			w := tables.MustRender(tbl, config.Default())

			var sb strings.Builder
			if err := ToCSV(&sb, w, tt.sep, tt.quoting); err != nil {
				t.Fatal(err)
			}
			if sb.String() != tt.text {
				t.Errorf("ToCSV() = %q, want %q", sb.String(), tt.text)
			}

			back, err := FromCSV("t", sb.String(), tt.sep, tt.quoting)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tbl, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToCSVSkipsRemovedRowsAndNumbering(t *testing.T) {
	tbl, err := FromCSV("t", "Name,Score\nBob,10\nAnn,20\nCid,30\n", ",", config.QuotingNone)
	if err != nil {
		t.Fatal(err)
	}
	w := tables.MustRender(tbl, config.New(config.WithSearch(false)))
	if _, err := w.Filter("a"); err != nil {
		t.Fatal(err)
	}
	got, err := ToCSVString(w)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Name,Score\nAnn,20\n"; got != want {
		t.Errorf("ToCSVString() = %q, want %q", got, want)
	}
}

func TestImportDetectsSortTypes(t *testing.T) {
	csvData := "name,price,born,code\n" +
		"Alice,$30.50,2001-02-03,A1\n" +
		"Bob,12,1999-12-31,7\n" +
		"Carol,,2010-06-01,B2\n"

	tbl, err := ImportFromReader(strings.NewReader(csvData), "people", DefaultOptions())
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}
	var got []columns.SortType
	for _, h := range tbl.Headers {
		got = append(got, h.SortType)
	}
	want := []columns.SortType{columns.SortAlpha, columns.SortDigit, columns.SortDate, columns.SortAlpha}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort types mismatch (-want +got):\n%s", diff)
	}
}

func TestImportDeclaredSortTypes(t *testing.T) {
	opts := OptionsFromConfig(config.New(
		config.WithSortType("code", columns.SortDigit),
		config.WithCSV(";", config.QuotingNone),
	))
	opts.DetectTypes = false
	opts.Caption = "Codes"

	tbl, err := Import("codes", "code;born\n1;2001-02-03\n", opts)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Headers[0].SortType != columns.SortDigit || tbl.Headers[1].SortType != columns.SortAlpha {
		t.Errorf("headers = %+v", tbl.Headers)
	}
	if tbl.Caption != "Codes" {
		t.Errorf("Caption = %q", tbl.Caption)
	}
}

func TestImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := ImportFromFile(path, "t", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(tbl.Rows))
	}
	if _, err := ImportFromFile(filepath.Join(t.TempDir(), "missing.csv"), "t", DefaultOptions()); err == nil {
		t.Error("expected error for missing file")
	}
}
