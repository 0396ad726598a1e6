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

package views

import (
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/query"
	"github.com/mythras-eg/ttable/core/tables"
)

// Class names emitted regardless of configuration.
const (
	NumberingCellClass = "numcx"
	SortImageClass     = "sort-img"
	PaginationClass    = "pagination"
	PageInfoClass      = "pag-info"
	PageListClass      = "page-list"
	PageItemClass      = "page-item"
	SelectedPageClass  = "selected-page-item"
	EllipsisClass      = "page-ellipsis"
)

// WidgetViewModel is the projection of one widget for template consumption.
// Only rows that are neither removed nor outside the page window are listed.
type WidgetViewModel struct {
	ID           string
	DOMID        safehtml.Identifier
	Title        string
	Caption      string
	TableClass   string
	CaptionClass string

	Numbering      bool
	NumberingClass string

	Headers []HeaderCell
	Rows    []RowView

	Pagination *PaginationView // nil when the page list is not drawn
	Search     *SearchView     // nil when search is off

	Info       tables.Info
	InfoURL    safehtml.URL
	ExportCSV  safehtml.URL
	ExportXLSX safehtml.URL
	ExportText safehtml.URL
	LoadURL    safehtml.URL
	ViewURL    safehtml.URL
}

// HeaderCell is one th.
type HeaderCell struct {
	Col      int
	Text     string
	Class    string
	Sortable bool
	SortURL  safehtml.URL

	// Indicator is set on the column last sorted, unless a filter ran since.
	Indicator    bool
	IndicatorSrc safehtml.URL
	IndicatorAlt string
}

// RowView is one visible tr.
type RowView struct {
	ID     int
	Class  string
	Number int
	Cells  []CellView
}

// CellView is one td. Editing cells render the Save/Discard form instead of
// their text.
type CellView struct {
	Row          int
	Col          int
	Text         string
	Class        string
	Editable     bool
	Editing      bool
	EditURL      safehtml.URL
	EditAction   safehtml.URL
	Clickable    bool
	HighlightURL safehtml.URL
}

// PaginationView is the pagination block under the table.
type PaginationView struct {
	Class string
	Info  string
	Items []PageItemView
}

// PageItemView is one page button or the ellipsis.
type PageItemView struct {
	Label    string
	Class    string
	URL      safehtml.URL
	Ellipsis bool
}

// SearchView is the search form above the table.
type SearchView struct {
	InputID string
	DOMID   safehtml.Identifier
	Query   string
	Action  safehtml.URL
	Matches int
}

// domID builds an element id "ttable-<part>-<part>" from arbitrary text,
// dropping characters not allowed in identifiers.
func domID(parts ...string) safehtml.Identifier {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteByte('-')
		for _, r := range p {
			if r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				sb.WriteRune(r)
			}
		}
	}
	return safehtml.IdentifierFromConstantPrefix("ttable", sb.String())
}

// joinClasses joins the non-empty classes with spaces.
func joinClasses(classes ...string) string {
	var out []string
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// BuildWidgetViewModel projects the widget state. The title falls back to
// the widget id.
func BuildWidgetViewModel(w *tables.Widget, title string, q *query.Query) WidgetViewModel {
	cfg := w.Config()
	if title == "" {
		title = w.ID()
	}
	if q == nil || q.Table != w.ID() {
		q = query.ForTable(w.ID())
	}

	vm := WidgetViewModel{
		ID:           w.ID(),
		DOMID:        domID(w.ID()),
		Title:        title,
		Caption:      w.Caption(),
		TableClass:   tableClass(cfg),
		CaptionClass: cfg.Style.Caption,
		Numbering:    cfg.Numbering.Enabled,
		NumberingClass: joinClasses(
			NumberingCellClass, cfg.Numbering.Class,
		),
		Info:       w.Info(),
		InfoURL:    q.Info(),
		ExportCSV:  q.Export("csv"),
		ExportXLSX: q.Export("xlsx"),
		ExportText: q.Export("txt"),
		LoadURL:    q.LoadAction(),
		ViewURL:    q.View(),
	}

	sortedCol, dir, sorted := w.SortedColumn()
	indicator := sorted && w.SortIndicatorVisible()
	for i, h := range w.Headers() {
		cell := HeaderCell{Col: i, Text: h.Text, Sortable: cfg.Sort.Enabled}
		classes := []string{cfg.Style.Head}
		if cfg.Hover.Head {
			classes = append(classes, cfg.Hover.HeadCellClass)
		}
		if cfg.Sort.Enabled {
			classes = append(classes, cfg.Sort.ClickableClass, h.SortType.Class())
			cell.SortURL = q.WithSort(i)
		}
		if indicator && i == sortedCol {
			cell.Indicator = true
			if dir == columns.Ascending {
				classes = append(classes, cfg.Sort.AscClass)
				cell.IndicatorSrc = safehtml.URLSanitized(cfg.Sort.AscImage)
			} else {
				classes = append(classes, cfg.Sort.DescClass)
				cell.IndicatorSrc = safehtml.URLSanitized(cfg.Sort.DescImage)
			}
			cell.IndicatorAlt = dir.String()
		}
		cell.Class = joinClasses(classes...)
		vm.Headers = append(vm.Headers, cell)
	}

	for _, r := range w.VisibleRows() {
		rv := RowView{ID: r.ID, Number: r.Number}
		if r.Odd {
			rv.Class = cfg.Stripe.OddClass
		}
		for col := range w.Headers() {
			text := r.Cell(col)
			cv := CellView{
				Row:       r.ID,
				Col:       col,
				Text:      text,
				Editable:  cfg.Edit.Enabled,
				Clickable: cfg.Highlight.OnClick,
			}
			classes := []string{cfg.Style.Body}
			if indicator && col == sortedCol {
				classes = append(classes, cfg.Sort.SortedClass)
			}
			if cfg.Highlight.OnClick && w.IsHighlighted(text) {
				classes = append(classes, cfg.Highlight.OnClickClass)
			}
			cv.Class = joinClasses(classes...)
			if cfg.Edit.Enabled {
				_, cv.Editing = w.Editing(r.ID, col)
				cv.EditURL = q.WithEdit(r.ID, col)
				cv.EditAction = q.EditAction()
			}
			if cfg.Highlight.OnClick {
				cv.HighlightURL = q.WithHighlight(r.ID, col)
			}
			rv.Cells = append(rv.Cells, cv)
		}
		vm.Rows = append(vm.Rows, rv)
	}

	if w.Paginated() {
		pv := &PaginationView{
			Class: joinClasses(PaginationClass, w.ID()),
			Info:  w.PageInfo(),
		}
		for _, it := range w.PageItems() {
			if it.Ellipsis {
				pv.Items = append(pv.Items, PageItemView{
					Label:    "...",
					Class:    joinClasses(PageItemClass, EllipsisClass),
					URL:      q.WithExpandedPages(),
					Ellipsis: true,
				})
				continue
			}
			class := PageItemClass
			if it.Selected {
				class = joinClasses(PageItemClass, SelectedPageClass)
			}
			pv.Items = append(pv.Items, PageItemView{
				Label: strconv.Itoa(it.Number),
				Class: class,
				URL:   q.WithPage(it.Number),
			})
		}
		vm.Pagination = pv
	}

	if cfg.Search.Enabled {
		vm.Search = &SearchView{
			InputID: cfg.Search.InputID,
			DOMID:   domID(w.ID(), cfg.Search.InputID),
			Query:   w.Query(),
			Action:  q.SearchAction(),
			Matches: vm.Info.VirtualRows,
		}
	}
	return vm
}

// tableClass expresses the hover and highlight options as classes on the
// table element so a stylesheet can apply them with :hover rules.
func tableClass(cfg config.Config) string {
	classes := []string{cfg.Style.Table}
	if cfg.Hover.Head {
		classes = append(classes, cfg.Hover.HeadClass)
	}
	if cfg.Hover.Body {
		classes = append(classes, cfg.Hover.BodyClass)
	}
	if cfg.Highlight.Enabled {
		classes = append(classes, cfg.Highlight.Class)
	}
	return joinClasses(classes...)
}
