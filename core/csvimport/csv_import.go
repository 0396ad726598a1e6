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

package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

// ErrEmptyCSV is returned when converting an empty CSV string.
var ErrEmptyCSV = errors.New("empty CSV")

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// Separator is the field separator (defaults to ",")
	Separator string
	// Quoting selects plain splitting or RFC 4180 parsing
	Quoting config.Quoting
	// Caption is copied onto the table
	Caption string
	// SortTypes declares sort types by header text
	SortTypes map[string]columns.SortType
	// DetectTypes samples the data to pick digit or date sorting for
	// columns without a declared sort type
	DetectTypes bool
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		Separator:   ",",
		Quoting:     config.QuotingNone,
		SortTypes:   make(map[string]columns.SortType),
		DetectTypes: true,
		SampleSize:  100,
	}
}

// OptionsFromConfig returns import options using the widget's CSV settings
// and declared sort types.
func OptionsFromConfig(cfg config.Config) ImportOptions {
	opts := DefaultOptions()
	opts.Separator = cfg.CSV.Separator
	opts.Quoting = cfg.CSV.Quoting
	for h, st := range cfg.Sort.Types {
		opts.SortTypes[h] = st
	}
	return opts
}

// ImportFromFile imports a CSV file and returns a table with the given id
func ImportFromFile(path, id string, options ImportOptions) (*tables.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Import(id, string(data), options)
}

// ImportFromReader imports CSV data from an io.Reader
func ImportFromReader(r io.Reader, id string, options ImportOptions) (*tables.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return Import(id, string(data), options)
}

// Import converts CSV text and declares the column sort types.
func Import(id, text string, options ImportOptions) (*tables.Table, error) {
	t, err := FromCSV(id, text, options.Separator, options.Quoting)
	if err != nil {
		return nil, err
	}
	t.Caption = options.Caption

	var detected []columns.SortType
	if options.DetectTypes {
		sampleSize := options.SampleSize
		if sampleSize <= 0 {
			sampleSize = 100
		}
		detected = detectSortTypes(len(t.Headers), t.Rows, sampleSize)
	}
	for i := range t.Headers {
		if st, ok := options.SortTypes[t.Headers[i].Text]; ok {
			t.Headers[i].SortType = st
		} else if detected != nil {
			t.Headers[i].SortType = detected[i]
		}
	}
	return t, nil
}

// FromCSV converts CSV text into a table. The first line is the header.
// Rows longer than the header are truncated, shorter rows are kept as
// they are. A single trailing empty line is ignored.
//
// With QuotingNone the text is split on "\n" and then on the separator,
// without any unquoting.
func FromCSV(id, text, sep string, quoting config.Quoting) (*tables.Table, error) {
	if text == "" {
		return nil, ErrEmptyCSV
	}
	if sep == "" {
		sep = ","
	}

	var records [][]string
	switch quoting {
	case config.QuotingRFC4180:
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = []rune(sep)[0]
		r.FieldsPerRecord = -1
		var err error
		records, err = r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
	default:
		lines := strings.Split(text, "\n")
		if len(lines) > 1 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			records = append(records, strings.Split(strings.TrimSuffix(line, "\r"), sep))
		}
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	t := tables.NewTable(id, records[0]...)
	width := len(records[0])
	for _, rec := range records[1:] {
		if len(rec) > width {
			rec = rec[:width]
		}
		t.AddRow(rec...)
	}
	return t, nil
}

// ToCSV writes the header and every not-removed row in display order.
// The numbering column is not exported. Every row, the last included,
// ends with "\n".
//
// QuotingNone joins cells with the separator and performs no escaping, so
// cells containing the separator or a newline do not survive a round trip.
func ToCSV(out io.Writer, w *tables.Widget, sep string, quoting config.Quoting) error {
	if sep == "" {
		sep = ","
	}
	var header []string
	for _, h := range w.Headers() {
		header = append(header, h.Text)
	}
	records := [][]string{header}
	for _, r := range w.Rows() {
		if !r.Removed {
			records = append(records, r.Cells)
		}
	}

	if quoting == config.QuotingRFC4180 {
		cw := csv.NewWriter(out)
		cw.Comma = []rune(sep)[0]
		if err := cw.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	}
	for _, rec := range records {
		if _, err := io.WriteString(out, strings.Join(rec, sep)+"\n"); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	return nil
}

// ToCSVString is ToCSV into a string using the widget's CSV settings.
func ToCSVString(w *tables.Widget) (string, error) {
	var sb strings.Builder
	cfg := w.Config()
	if err := ToCSV(&sb, w, cfg.CSV.Separator, cfg.CSV.Quoting); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// detectSortTypes samples data to determine if columns are numeric, dates
// or text
func detectSortTypes(width int, rows [][]string, sampleSize int) []columns.SortType {
	types := make([]columns.SortType, width)

	rowsToSample := min(sampleSize, len(rows))

	for i := range types {
		isDigit, isDate := true, true
		hasNonEmpty := false

		for j := 0; j < rowsToSample; j++ {
			if i >= len(rows[j]) {
				continue
			}
			value := strings.TrimSpace(rows[j][i])
			if value == "" {
				continue
			}
			hasNonEmpty = true

			if isDigit && !looksNumeric(value) {
				isDigit = false
			}
			if isDate {
				if _, err := columns.ParseDatetime(value, time.UTC); err != nil || looksNumeric(value) {
					isDate = false
				}
			}
			if !isDigit && !isDate {
				break
			}
		}

		switch {
		case hasNonEmpty && isDigit:
			types[i] = columns.SortDigit
		case hasNonEmpty && isDate:
			types[i] = columns.SortDate
		default:
			types[i] = columns.SortAlpha
		}
	}
	return types
}

// looksNumeric accepts a number with an optional currency or unit prefix,
// e.g. "42", "-1.5" or "$12.50".
func looksNumeric(s string) bool {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Sc, r) || unicode.IsSpace(r)
	})
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
