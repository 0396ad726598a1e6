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

// ToggleHighlight marks every cell whose trimmed text equals the clicked
// cell's. Clicking a cell of the highlighted value clears the highlight.
func (w *Widget) ToggleHighlight(row, col int) error {
	if !w.cfg.Highlight.OnClick {
		return ErrDisabled
	}
	if col < 0 || col >= len(w.headers) {
		return ErrNoSuchColumn
	}
	r := w.rowByID(row)
	if r == nil || r.Removed {
		return ErrNoSuchRow
	}
	v := strings.TrimSpace(r.Cell(col))
	if w.highlight != nil && *w.highlight == v {
		w.highlight = nil
		return nil
	}
	w.highlight = &v
	return nil
}

// Highlighted returns the highlighted value, if any.
func (w *Widget) Highlighted() (string, bool) {
	if w.highlight == nil {
		return "", false
	}
	return *w.highlight, true
}

// IsHighlighted reports whether text carries the click-highlight class.
func (w *Widget) IsHighlighted(text string) bool {
	return w.highlight != nil && strings.TrimSpace(text) == *w.highlight
}
