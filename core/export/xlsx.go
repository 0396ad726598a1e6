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

// Package export writes widgets in formats other than HTML and CSV.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/tables"
)

const defaultSheet = "Sheet1"

// ErrNoSheet is returned when a workbook has no sheets or lacks the requested one.
var ErrNoSheet = errors.New("no such sheet")

// sheetName returns a valid sheet name for a table id. Excel limits sheet
// names to 31 characters.
func sheetName(id string) string {
	if id == "" {
		return defaultSheet
	}
	r := []rune(id)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

// XLSX writes the same content as the CSV export (the header and every
// not-removed row in display order, without numbering) as a workbook with
// one sheet named after the table. Numeric cells of digit columns are
// written as numbers.
func XLSX(out io.Writer, w *tables.Widget) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(w.ID())
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := w.Headers()
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h.Text); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	rowIdx := 2
	for _, r := range w.Rows() {
		if r.Removed {
			continue
		}
		for col, text := range r.Cells {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			var value any = text
			if col < len(headers) && headers[col].SortType == columns.SortDigit {
				if n, err := strconv.ParseFloat(text, 64); err == nil {
					value = n
				}
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
		rowIdx++
	}

	for col := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// FromXLSX reads a sheet of a workbook into a table. The first row is the
// header. An empty sheet name selects the first sheet.
func FromXLSX(r io.Reader, id, sheet string) (*tables.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheet
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrNoSheet, sheet)
	}

	t := tables.NewTable(id, rows[0]...)
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width {
			row = row[:width]
		}
		t.AddRow(row...)
	}
	return t, nil
}
