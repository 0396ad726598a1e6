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
	"errors"
	"strings"

	"github.com/mythras-eg/ttable/core/columns"
)

var (
	// ErrNoTable is returned when a table has no id or no header row.
	ErrNoTable = errors.New("table needs an id and at least one header")
	// ErrNoSuchColumn is returned for a column index outside the header.
	ErrNoSuchColumn = errors.New("no such column")
	// ErrNoSuchRow is returned for a row id that is not in the live body.
	ErrNoSuchRow = errors.New("no such row")
	// ErrPageOutOfRange is returned when a page outside [1, page count] is requested.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrDisabled is returned when an operation's feature is switched off.
	ErrDisabled = errors.New("feature disabled")
	// ErrNotEditable is returned when editing the numbering column.
	ErrNotEditable = errors.New("column is not editable")
	// ErrNotEditing is returned when saving or discarding a cell that is not being edited.
	ErrNotEditing = errors.New("cell is not being edited")
)

// Header is one column header.
type Header struct {
	Text     string
	SortType columns.SortType
}

// Row is one body row. ID is stable for the lifetime of the widget and is
// assigned in source order when the widget is rendered.
type Row struct {
	ID      int
	Cells   []string
	Removed bool // removed by the search filter
	Hidden  bool // outside the current page window
	Odd     bool // carries the stripe class
	Number  int  // row number, 0 when numbering is off
}

// Cell returns the text of column col, or "" for ragged rows.
func (r *Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

func (r *Row) clone() *Row {
	c := *r
	c.Cells = append([]string(nil), r.Cells...)
	return &c
}

// NumberingColumn is the column index of the row numbering cells.
const NumberingColumn = -1

// CellRef addresses one data cell by row id and column index.
type CellRef struct {
	Row int
	Col int
}

// Table is a plain table as found in a page or a CSV file: an id, a header
// row and body rows. It carries no interactive state.
type Table struct {
	ID      string
	Caption string
	Headers []Header
	Rows    [][]string
}

// NewTable creates a table whose columns all sort alphabetically.
func NewTable(id string, headers ...string) *Table {
	t := &Table{ID: id}
	for _, h := range headers {
		t.Headers = append(t.Headers, Header{Text: h, SortType: columns.SortAlpha})
	}
	return t
}

// AddRow appends a body row. Rows may be shorter or longer than the header.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, append([]string(nil), cells...))
	return t
}

// SetSortType declares the sort type of the column with the given header text.
func (t *Table) SetSortType(header string, st columns.SortType) bool {
	for i := range t.Headers {
		if t.Headers[i].Text == header {
			t.Headers[i].SortType = st
			return true
		}
	}
	return false
}

// HeaderTexts returns the header texts in column order.
func (t *Table) HeaderTexts() []string {
	out := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		out[i] = h.Text
	}
	return out
}

// ColumnIndex returns the index of the column with the given header text, or -1.
func (t *Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if strings.TrimSpace(h.Text) == strings.TrimSpace(header) {
			return i
		}
	}
	return -1
}
