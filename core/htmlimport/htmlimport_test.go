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

package htmlimport

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/tables"
)

const page = `<!DOCTYPE html>
<html><body>
<table id="other"><tr><th>X</th></tr><tr><td>1</td></tr></table>
<table id="enemies" class="plain">
  <caption> Enemy   templates </caption>
  <thead>
    <tr>
      <th class="sort-alpha">Name</th>
      <th class="head sort-digit">Rank</th>
      <th class="sort-date">Created</th>
    </tr>
  </thead>
  <tbody>
    <tr><td><a href="/e/1">Orc   warrior</a></td><td>3</td><td>2024-01-02</td></tr>
    <tr><td>Goblin</td><td>1</td></tr>
  </tbody>
</table>
</body></html>`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(page), "enemies")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := &tables.Table{
		ID:      "enemies",
		Caption: "Enemy templates",
		Headers: []tables.Header{
			{Text: "Name", SortType: columns.SortAlpha},
			{Text: "Rank", SortType: columns.SortDigit},
			{Text: "Created", SortType: columns.SortDate},
		},
		Rows: [][]string{
			{"Orc warrior", "3", "2024-01-02"},
			{"Goblin", "1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutThead(t *testing.T) {
	got, err := Parse(strings.NewReader(page), "other")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"X"}, got.HeaderTexts()); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"1"}}, got.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingTable(t *testing.T) {
	if _, err := Parse(strings.NewReader(page), "nope"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Parse() error = %v, want ErrTableNotFound", err)
	}
}

func TestParseAll(t *testing.T) {
	all, err := ParseAll(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, tbl := range all {
		ids = append(ids, tbl.ID)
	}
	if diff := cmp.Diff([]string{"other", "enemies"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}
