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

package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mythras-eg/ttable/core/tables"
)

// ASCII renders the rows currently on screen (not removed, inside the page
// window) as a bordered text table, with the numbering column when it is
// enabled and the caption under the table.
func ASCII(out io.Writer, w *tables.Widget) error {
	numbering := w.Config().Numbering.Enabled

	table := tablewriter.NewTable(out, tablewriter.WithHeaderAutoFormat(tw.Off))

	var header []any
	if numbering {
		header = append(header, "#")
	}
	headers := w.Headers()
	for _, h := range headers {
		header = append(header, h.Text)
	}
	table.Header(header...)

	for _, r := range w.VisibleRows() {
		var row []string
		if numbering {
			row = append(row, strconv.Itoa(r.Number))
		}
		for col := range headers {
			row = append(row, r.Cell(col))
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row %d: %w", r.ID, err)
		}
	}
	if c := w.Caption(); c != "" {
		table.Caption(tw.Caption{Text: c})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if w.Paginated() {
		_, err := fmt.Fprintln(out, w.PageInfo())
		return err
	}
	return nil
}
