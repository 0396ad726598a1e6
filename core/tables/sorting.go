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
	"sort"

	"github.com/mythras-eg/ttable/core/columns"
)

// keyedRow pairs a row with the sort key of the column being sorted.
type keyedRow struct {
	row *Row
	key columns.SortKey
}

// SortColumn reorders the live rows by column col. The sort is stable, so
// rows with equal keys keep their relative order; unparsable numbers and
// dates sort last in either direction.
func (w *Widget) SortColumn(col int, dir columns.Direction) error {
	if col < 0 || col >= len(w.headers) {
		return ErrNoSuchColumn
	}
	st := w.headers[col].SortType

	keyed := make([]keyedRow, len(w.rows))
	for i, r := range w.rows {
		keyed[i] = keyedRow{row: r, key: columns.KeyOf(st, r.Cell(col))}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return columns.CompareDirected(keyed[i].key, keyed[j].key, dir) < 0
	})
	for i, k := range keyed {
		w.rows[i] = k.row
	}

	w.sort = sortState{col: col, dir: dir, indicator: true}
	w.Restripe()
	if w.cfg.Numbering.Enabled && w.cfg.Sort.ResetNumbering {
		w.Renumber()
	}
	if w.cfg.Page.Enabled {
		w.Show(1)
	}
	return nil
}

// ClickHeader is the header click handler. Clicking the column sorted
// ascending sorts it descending; any other click sorts ascending.
func (w *Widget) ClickHeader(col int) (columns.Direction, error) {
	if !w.cfg.Sort.Enabled {
		return columns.Ascending, ErrDisabled
	}
	dir := columns.Ascending
	if w.sort.col == col && w.sort.dir == columns.Ascending {
		dir = columns.Descending
	}
	return dir, w.SortColumn(col, dir)
}

// SortedColumn returns the last sorted column and its direction. ok is
// false until the first sort. A filter keeps both and only hides the
// indicator.
func (w *Widget) SortedColumn() (col int, dir columns.Direction, ok bool) {
	return w.sort.col, w.sort.dir, w.sort.col >= 0
}

// SortIndicatorVisible reports whether the direction image is shown.
func (w *Widget) SortIndicatorVisible() bool { return w.sort.indicator }
