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

// BeginEdit opens the inline editor on a cell and captures its current
// text so DiscardEdit can restore it. Beginning an edit on a cell that is
// already being edited keeps the first captured value.
func (w *Widget) BeginEdit(row, col int) (string, error) {
	r, err := w.editableCell(row, col)
	if err != nil {
		return "", err
	}
	ref := CellRef{Row: row, Col: col}
	if orig, ok := w.edits[ref]; ok {
		return orig, nil
	}
	w.edits[ref] = r.Cell(col)
	return w.edits[ref], nil
}

// SaveEdit replaces the cell text and closes the editor. The change is
// local to the live rows: the search snapshot keeps the rendered text.
func (w *Widget) SaveEdit(row, col int, text string) error {
	r, err := w.editableCell(row, col)
	if err != nil {
		return err
	}
	ref := CellRef{Row: row, Col: col}
	if _, ok := w.edits[ref]; !ok {
		return ErrNotEditing
	}
	for len(r.Cells) <= col {
		r.Cells = append(r.Cells, "")
	}
	r.Cells[col] = text
	delete(w.edits, ref)
	return nil
}

// DiscardEdit restores the text captured by BeginEdit and closes the editor.
func (w *Widget) DiscardEdit(row, col int) error {
	r, err := w.editableCell(row, col)
	if err != nil {
		return err
	}
	ref := CellRef{Row: row, Col: col}
	orig, ok := w.edits[ref]
	if !ok {
		return ErrNotEditing
	}
	if col < len(r.Cells) {
		r.Cells[col] = orig
	}
	delete(w.edits, ref)
	return nil
}

// Editing reports whether the cell has an open editor and returns the
// text captured when it was opened.
func (w *Widget) Editing(row, col int) (string, bool) {
	orig, ok := w.edits[CellRef{Row: row, Col: col}]
	return orig, ok
}

// EditCount returns the number of open editors.
func (w *Widget) EditCount() int { return len(w.edits) }

func (w *Widget) editableCell(row, col int) (*Row, error) {
	if !w.cfg.Edit.Enabled {
		return nil, ErrDisabled
	}
	if col == NumberingColumn {
		return nil, ErrNotEditable
	}
	if col < 0 || col >= len(w.headers) {
		return nil, ErrNoSuchColumn
	}
	r := w.rowByID(row)
	if r == nil || r.Removed {
		return nil, ErrNoSuchRow
	}
	return r, nil
}
