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

package tables

import (
	"fmt"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
)

// Widget is an interactive table: the view-model behind one rendered table.
// The live rows are the source of truth; the HTML is a projection of them.
//
// A Widget is not safe for concurrent use.
type Widget struct {
	id      string
	caption string
	cfg     config.Config
	headers []Header
	rows    []*Row

	// snapshot holds the rows as they were at render time. Filtering always
	// starts from it, which also discards any sort applied since.
	snapshot []*Row

	sort      sortState
	page      pageState
	edits     map[CellRef]string
	highlight *string
	query     string
}

type sortState struct {
	col       int // -1 when never sorted
	dir       columns.Direction
	indicator bool
}

// Info is a read-only snapshot of the widget's dimensions.
type Info struct {
	Columns        int `json:"columns"`
	VirtualColumns int `json:"virtual_columns"`
	Rows           int `json:"rows"`
	VirtualRows    int `json:"virtual_rows"`
	Cells          int `json:"cells"`
	VirtualCells   int `json:"virtual_cells"`
	CurrentPage    int `json:"current_page"`
}

// Render turns a plain table into a widget. It is the single entry point:
// the configuration is copied and consumed here, in a fixed order (styling,
// stripes, numbering, sorting, pagination, editing, search snapshot).
// Re-rendering means calling Render again with a fresh Table.
func Render(t *Table, cfg config.Config) (*Widget, error) {
	if t == nil || t.ID == "" || len(t.Headers) == 0 {
		return nil, ErrNoTable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Widget{
		id:      t.ID,
		caption: t.Caption,
		cfg:     cfg.Clone(),
		headers: append([]Header(nil), t.Headers...),
		sort:    sortState{col: -1},
		edits:   make(map[CellRef]string),
	}
	for i, cells := range t.Rows {
		w.rows = append(w.rows, &Row{ID: i, Cells: append([]string(nil), cells...)})
	}

	if w.cfg.Stripe.Enabled {
		w.Restripe()
	}
	if w.cfg.Numbering.Enabled {
		w.Renumber()
	}
	if w.cfg.Sort.Enabled {
		w.declareSortTypes()
	}
	if w.cfg.Page.Enabled {
		w.showPagination()
	}
	if w.cfg.Search.Enabled {
		w.snapshot = cloneRows(w.rows)
	}
	return w, nil
}

// MustRender is Render for tables known to be valid, such as demo data.
func MustRender(t *Table, cfg config.Config) *Widget {
	w, err := Render(t, cfg)
	if err != nil {
		panic(fmt.Sprintf("tables: render %q: %v", t.ID, err))
	}
	return w
}

// declareSortTypes applies Sort.All and the per-header overrides.
func (w *Widget) declareSortTypes() {
	for i := range w.headers {
		if w.cfg.Sort.All {
			w.headers[i].SortType = columns.SortAlpha
		}
		if st, ok := w.cfg.Sort.Types[w.headers[i].Text]; ok {
			w.headers[i].SortType = st
		}
	}
}

func cloneRows(rows []*Row) []*Row {
	out := make([]*Row, len(rows))
	for i, r := range rows {
		out[i] = r.clone()
	}
	return out
}

// ID returns the table id.
func (w *Widget) ID() string { return w.id }

// ShadowID returns the id of the pristine snapshot, "temp-<id>".
func (w *Widget) ShadowID() string { return "temp-" + w.id }

// Caption returns the table caption.
func (w *Widget) Caption() string { return w.caption }

// Config returns a copy of the widget configuration.
func (w *Widget) Config() config.Config { return w.cfg.Clone() }

// Headers returns the column headers.
func (w *Widget) Headers() []Header {
	return append([]Header(nil), w.headers...)
}

// Rows returns copies of the live rows in display order, including rows
// removed by the filter.
func (w *Widget) Rows() []Row {
	out := make([]Row, len(w.rows))
	for i, r := range w.rows {
		out[i] = *r.clone()
	}
	return out
}

// VisibleRows returns copies of the rows that are neither removed nor
// hidden by pagination.
func (w *Widget) VisibleRows() []Row {
	var out []Row
	for _, r := range w.rows {
		if !r.Removed && !r.Hidden {
			out = append(out, *r.clone())
		}
	}
	return out
}

// Query returns the active filter query.
func (w *Widget) Query() string { return w.query }

// HasSnapshot reports whether the search snapshot was taken.
func (w *Widget) HasSnapshot() bool { return w.snapshot != nil }

// SnapshotLen returns the number of rows in the snapshot.
func (w *Widget) SnapshotLen() int { return len(w.snapshot) }

func (w *Widget) rowByID(id int) *Row {
	for _, r := range w.rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (w *Widget) virtualRows() int {
	n := 0
	for _, r := range w.rows {
		if !r.Removed {
			n++
		}
	}
	return n
}

// Restripe marks every other not-removed row, starting with the first, with
// the odd class. Rows hidden by pagination still count.
func (w *Widget) Restripe() {
	k := 0
	for _, r := range w.rows {
		if r.Removed {
			r.Odd = false
			continue
		}
		r.Odd = w.cfg.Stripe.Enabled && k%2 == 0
		k++
	}
}

// Renumber numbers the not-removed rows 1, 2, 3, ... in display order.
func (w *Widget) Renumber() {
	n := 0
	for _, r := range w.rows {
		if r.Removed || !w.cfg.Numbering.Enabled {
			r.Number = 0
			continue
		}
		n++
		r.Number = n
	}
}

// Info recomputes the dimensions from the current state.
func (w *Widget) Info() Info {
	cols := len(w.headers)
	if w.cfg.Numbering.Enabled {
		cols++
	}
	// Filtered rows are deleted from the table, so both row counts
	// cover the remaining rows only.
	remaining := w.virtualRows()
	info := Info{
		Columns:        cols,
		VirtualColumns: cols,
		Rows:           remaining,
		VirtualRows:    remaining,
	}
	for _, r := range w.rows {
		if r.Removed {
			continue
		}
		info.Cells += len(r.Cells)
		if w.cfg.Numbering.Enabled {
			info.Cells++
		}
	}
	info.VirtualCells = info.VirtualColumns * info.VirtualRows
	if w.page.drawn {
		info.CurrentPage = w.page.current
	}
	return info
}
