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

import "strings"

// Filter rebuilds the live rows from the snapshot and removes every row
// none of whose data cells contains query. Any sort or edit applied since
// render is discarded with the old rows. The numbering column never
// matches. An empty query restores every row. Filter returns the number
// of matching rows.
func (w *Widget) Filter(query string) (int, error) {
	if !w.cfg.Search.Enabled || w.snapshot == nil {
		return 0, ErrDisabled
	}
	w.rows = cloneRows(w.snapshot)
	w.edits = make(map[CellRef]string)
	w.query = query

	matches := 0
	for _, r := range w.rows {
		r.Hidden = false
		r.Removed = !w.rowMatches(r, query)
		if !r.Removed {
			matches++
		}
	}

	w.Restripe()
	if w.cfg.Numbering.Enabled {
		w.Renumber()
	}
	if w.cfg.Page.Enabled {
		w.showPagination()
	}
	w.sort.indicator = false
	return matches, nil
}

func (w *Widget) rowMatches(r *Row, query string) bool {
	if query == "" {
		return true
	}
	if !w.cfg.Search.CaseSensitive {
		query = strings.ToUpper(query)
	}
	for _, c := range r.Cells {
		if !w.cfg.Search.CaseSensitive {
			c = strings.ToUpper(c)
		}
		if strings.Contains(c, query) {
			return true
		}
	}
	return false
}

// Search returns the ids of the not-removed rows that contain query, in
// display order. It does not change the view.
func (w *Widget) Search(query string) []int {
	return w.collect(func(r *Row) bool { return w.rowMatches(r, query) })
}

// InvSearch returns the ids of the not-removed rows that do not contain
// query.
func (w *Widget) InvSearch(query string) []int {
	return w.collect(func(r *Row) bool { return !w.rowMatches(r, query) })
}

func (w *Widget) collect(keep func(*Row) bool) []int {
	var ids []int
	for _, r := range w.rows {
		if !r.Removed && keep(r) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// SearchStrict returns the cells whose trimmed text equals text exactly.
func (w *Widget) SearchStrict(text string) []CellRef {
	var refs []CellRef
	for _, r := range w.rows {
		if r.Removed {
			continue
		}
		for col, c := range r.Cells {
			if strings.TrimSpace(c) == text {
				refs = append(refs, CellRef{Row: r.ID, Col: col})
			}
		}
	}
	return refs
}
