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

package rendering

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
	"github.com/mythras-eg/ttable/core/views"
)

func render(t *testing.T, w *tables.Widget) string {
	t.Helper()
	r, err := NewWidgetRenderer()
	if err != nil {
		t.Fatalf("NewWidgetRenderer() error = %v", err)
	}
	var sb strings.Builder
	if err := r.Render(&sb, views.BuildWidgetViewModel(w, "Enemies", nil)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestRenderWidget(t *testing.T) {
	tbl := tables.NewTable("enemies", "Name", "Rank")
	tbl.Caption = "Templates"
	for _, name := range []string{"Orc", "Goblin", "<Troll>", "Ogre", "Wolf", "Bat", "Rat", "Imp", "Kobold", "Gnoll", "Lich", "Bandit"} {
		tbl.AddRow(name, "1")
	}
	tbl.SetSortType("Rank", columns.SortDigit)
	cfg := config.New(
		config.WithPagination(5),
		config.WithSearch(false),
		config.WithEditing(),
	)
	w := tables.MustRender(tbl, cfg)
	if err := w.SortColumn(0, columns.Ascending); err != nil {
		t.Fatal(err)
	}
	if _, err := w.BeginEdit(2, 0); err != nil {
		t.Fatal(err)
	}

	out := render(t, w)
	for _, want := range []string{
		`id="ttable-enemies"`,
		`<caption class="caption-default">Templates</caption>`,
		`<th class="numcx num-default">#</th>`,
		`href="/tables/enemies/sort?col=0"`,
		`class="sort-img" src="/static/tquery/images/down.png"`,
		`&lt;Troll&gt;`,
		`<div class="pagination enemies">`,
		`<span class="pag-info">Showing 1 - 5 of 12</span>`,
		`<li class="page-item selected-page-item"><a href="/tables/enemies/page?n=1">1</a></li>`,
		`id="ttable-enemies-filter"`,
		`action="/tables/enemies/edit"`,
		`value="discard"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<Troll>") {
		t.Error("cell text not escaped")
	}
	if strings.Contains(out, ">Wolf<") {
		t.Error("row outside the page window rendered")
	}
}

func TestRenderLanding(t *testing.T) {
	r, err := NewWidgetRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	vm := views.BuildLandingViewModel("ttable", "demo", []views.TableLink{
		views.NewTableLink("enemies", "Enemy templates", "search", 3),
	})
	if err := r.RenderLanding(&sb, vm); err != nil {
		t.Fatalf("RenderLanding() error = %v", err)
	}
	for _, want := range []string{`href="/tables/enemies"`, "Enemy templates", "3 rows", `href="/tables/enemies/export.xlsx"`} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("landing missing %q", want)
		}
	}
}

func TestPagesShareHead(t *testing.T) {
	r, err := NewWidgetRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var landing strings.Builder
	if err := r.RenderLanding(&landing, views.BuildLandingViewModel("ttable", "", nil)); err != nil {
		t.Fatalf("RenderLanding() error = %v", err)
	}
	widget := render(t, tables.MustRender(tables.NewTable("enemies", "Name").AddRow("Orc"), config.Default()))

	for name, out := range map[string]string{"landing": landing.String(), "widget": widget} {
		if !strings.HasPrefix(out, "<!DOCTYPE html>") {
			t.Errorf("%s page does not start with the doctype", name)
		}
		if !strings.Contains(out, `<link rel="stylesheet" href="/static/ttable.css">`) {
			t.Errorf("%s page missing the stylesheet", name)
		}
	}
	if !strings.Contains(landing.String(), "<title>ttable</title>") || !strings.Contains(widget, "<title>Enemies</title>") {
		t.Error("page titles not rendered")
	}
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"ttable.css", "tquery/images/down.png", "tquery/images/up.png"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Errorf("static %s: %v", name, err)
		}
	}
}
