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

import "fmt"

// compactPageLimit is the largest page count listed in full.
const compactPageLimit = 8

type pageState struct {
	rowsPerPage int
	current     int
	count       int
	drawn       bool // the page list is only drawn when rows overflow one page
	expanded    bool
}

// PageItem is one entry of the page button list. Ellipsis items carry no
// page number.
type PageItem struct {
	Number   int
	Ellipsis bool
	Selected bool
}

// showPagination recomputes the page count from the not-removed rows and
// shows page 1 with a collapsed button list.
func (w *Widget) showPagination() {
	rpp := w.cfg.Page.RowsPerPage
	n := w.virtualRows()
	w.page = pageState{
		rowsPerPage: rpp,
		current:     1,
		count:       (n + rpp - 1) / rpp,
		drawn:       n > rpp,
	}
	w.Show(1)
}

// Show displays page p: the not-removed rows in [(p-1)*rpp, p*rpp) are
// shown, every other row is hidden. Out-of-range pages leave the view
// unchanged and return false.
func (w *Widget) Show(p int) bool {
	if !w.cfg.Page.Enabled || p < 1 || p > w.page.count {
		return false
	}
	lo, hi := (p-1)*w.page.rowsPerPage, p*w.page.rowsPerPage
	k := 0
	for _, r := range w.rows {
		if r.Removed {
			r.Hidden = false
			continue
		}
		r.Hidden = k < lo || k >= hi
		k++
	}
	w.page.current = p
	return true
}

// ShowPage is Show with an error for callers that care.
func (w *Widget) ShowPage(p int) error {
	if !w.cfg.Page.Enabled {
		return ErrDisabled
	}
	if !w.Show(p) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, p, w.page.count)
	}
	return nil
}

// CurrentPage returns the current page, or 0 when pagination is off.
func (w *Widget) CurrentPage() int {
	if !w.cfg.Page.Enabled {
		return 0
	}
	return w.page.current
}

// PageCount returns the number of pages.
func (w *Widget) PageCount() int { return w.page.count }

// Paginated reports whether the page list is drawn.
func (w *Widget) Paginated() bool { return w.cfg.Page.Enabled && w.page.drawn }

// PageItems returns the page button list: every page when there are at
// most eight or the list was expanded, otherwise pages 1 to 3, an
// ellipsis and the last three pages.
func (w *Widget) PageItems() []PageItem {
	if !w.Paginated() {
		return nil
	}
	item := func(n int) PageItem {
		return PageItem{Number: n, Selected: n == w.page.current}
	}
	var items []PageItem
	if w.page.expanded || w.page.count <= compactPageLimit {
		for n := 1; n <= w.page.count; n++ {
			items = append(items, item(n))
		}
		return items
	}
	for n := 1; n <= 3; n++ {
		items = append(items, item(n))
	}
	items = append(items, PageItem{Ellipsis: true})
	for n := w.page.count - 2; n <= w.page.count; n++ {
		items = append(items, item(n))
	}
	return items
}

// ExpandPages replaces the ellipsis with the full page list. The current
// page stays selected.
func (w *Widget) ExpandPages() {
	w.page.expanded = true
}

// PageInfo describes the visible window, e.g. "Showing 11 - 20 of 25".
func (w *Widget) PageInfo() string {
	n := w.virtualRows()
	if n == 0 {
		return "Showing 0 - 0 of 0"
	}
	if !w.cfg.Page.Enabled {
		return fmt.Sprintf("Showing 1 - %d of %d", n, n)
	}
	lo := (w.page.current-1)*w.page.rowsPerPage + 1
	hi := min(w.page.current*w.page.rowsPerPage, n)
	return fmt.Sprintf("Showing %d - %d of %d", lo, hi, n)
}
