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

// Package htmlimport reads plain HTML tables into tables.Table values.
//
// A table needs an id, a header row of th cells (inside thead, or the
// first row of the table) and body rows of td cells. Header classes
// sort-alpha, sort-digit and sort-date declare the column sort type.
package htmlimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/tables"
)

// ErrTableNotFound is returned when the document has no table with the requested id.
var ErrTableNotFound = errors.New("table not found")

// Parse reads an HTML document and returns the table with the given id.
func Parse(r io.Reader, id string) (*tables.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	var found *html.Node
	walk(doc, func(n *html.Node) bool {
		if found == nil && n.DataAtom == atom.Table && attr(n, "id") == id {
			found = n
		}
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, id)
	}
	return readTable(found, id), nil
}

// ParseAll returns every table of the document that has an id, in
// document order.
func ParseAll(r io.Reader) ([]*tables.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	var out []*tables.Table
	walk(doc, func(n *html.Node) bool {
		if n.DataAtom == atom.Table {
			if id := attr(n, "id"); id != "" {
				out = append(out, readTable(n, id))
			}
			return false
		}
		return true
	})
	return out, nil
}

func readTable(n *html.Node, id string) *tables.Table {
	t := &tables.Table{ID: id}
	headerDone := false
	for _, tr := range rowsOf(n) {
		cells := cellsOf(tr)
		if !headerDone {
			isHeader := len(cells) > 0
			for _, c := range cells {
				if c.DataAtom != atom.Th {
					isHeader = false
				}
			}
			if isHeader {
				for _, c := range cells {
					t.Headers = append(t.Headers, tables.Header{
						Text:     text(c),
						SortType: columns.SortTypeFromClasses(attr(c, "class")),
					})
				}
				headerDone = true
				continue
			}
		}
		var row []string
		for _, c := range cells {
			row = append(row, text(c))
		}
		t.Rows = append(t.Rows, row)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Caption {
			t.Caption = text(c)
		}
	}
	return t
}

// rowsOf returns the tr elements of a table, without descending into
// nested tables.
func rowsOf(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.DataAtom == atom.Tr {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

func cellsOf(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, c)
		}
	}
	return cells
}

// walk visits n and its descendants depth first. Children are skipped
// when visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the trimmed text content of n with runs of whitespace
// collapsed to one space.
func text(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
