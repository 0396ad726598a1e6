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

// Package config holds the widget configuration: one record per concern,
// each field with a documented default. A Config is a value; the widget
// copies it when rendering and never reads the caller's copy again.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/mythras-eg/ttable/core/columns"
)

// Quoting selects how CSV fields are escaped.
type Quoting string

const (
	// QuotingNone writes and reads fields verbatim: separators or newlines
	// inside a cell are not escaped. This is the legacy format.
	QuotingNone Quoting = "none"
	// QuotingRFC4180 quotes fields containing separators, quotes or
	// newlines as described in RFC 4180.
	QuotingRFC4180 Quoting = "rfc4180"
)

// Style holds the base classes applied to the table parts.
type Style struct {
	Table   string `yaml:"table"`   // default "table-default"
	Head    string `yaml:"head"`    // default "head-default", on every thead th
	Body    string `yaml:"body"`    // default "body-default", on every tbody td
	Caption string `yaml:"caption"` // default "caption-default"
}

// Hover controls hover highlighting of header and body.
type Hover struct {
	Head          bool   `yaml:"head"`            // default true
	Body          bool   `yaml:"body"`            // default true
	HeadClass     string `yaml:"head_class"`      // default "hoverhead-default"
	HeadCellClass string `yaml:"head_cell_class"` // default "hoverheadtd-default"
	BodyClass     string `yaml:"body_class"`      // default "hoverbody-default"
}

// Highlight controls single-cell hover highlighting and click highlighting
// of every cell sharing the clicked cell's value.
type Highlight struct {
	Enabled      bool   `yaml:"enabled"`        // default true
	Class        string `yaml:"class"`          // default "highlight-default"
	OnClick      bool   `yaml:"on_click"`       // default false
	OnClickClass string `yaml:"on_click_class"` // default "clicklight-default"
}

// Stripe controls alternating row classes.
type Stripe struct {
	Enabled  bool   `yaml:"enabled"`   // default true
	OddClass string `yaml:"odd_class"` // default "odd-default"
}

// Numbering controls the synthetic row number column.
type Numbering struct {
	Enabled bool   `yaml:"enabled"` // default true
	Class   string `yaml:"class"`   // default "num-default"
}

// Sort controls click-to-sort headers.
type Sort struct {
	Enabled bool `yaml:"enabled"` // default true
	// All declares every column alpha, overriding header declarations.
	All bool `yaml:"all"` // default false
	// ResetNumbering renumbers rows after each sort; otherwise row numbers
	// travel with their rows.
	ResetNumbering bool   `yaml:"reset_numbering"` // default true
	SortedClass    string `yaml:"sorted_class"`    // default "sorted-default"
	ClickableClass string `yaml:"clickable_class"` // default "clickable-default"
	OnClickClass   string `yaml:"on_click_class"`  // default "onclick-default"
	AscClass       string `yaml:"asc_class"`       // default "sortasc-default"
	DescClass      string `yaml:"desc_class"`      // default "sortdesc-default"
	AscImage       string `yaml:"asc_image"`       // default "/static/tquery/images/down.png"
	DescImage      string `yaml:"desc_image"`      // default "/static/tquery/images/up.png"
	// Types overrides the declared sort type of columns by header text.
	Types map[string]columns.SortType `yaml:"types"`
}

// Page controls pagination.
type Page struct {
	Enabled     bool `yaml:"enabled"`       // default false
	RowsPerPage int  `yaml:"rows_per_page"` // default 10
}

// Edit controls inline cell editing.
type Edit struct {
	Enabled bool `yaml:"enabled"` // default false
}

// CSV controls import and export.
type CSV struct {
	Separator string  `yaml:"separator"` // default ","
	Quoting   Quoting `yaml:"quoting"`   // default QuotingNone
}

// Search controls the live substring filter.
type Search struct {
	Enabled       bool   `yaml:"enabled"`        // default false
	InputID       string `yaml:"input_id"`       // default "filter"
	CaseSensitive bool   `yaml:"case_sensitive"` // default false
}

// Config is the full widget configuration.
type Config struct {
	Style     Style     `yaml:"style"`
	Hover     Hover     `yaml:"hover"`
	Highlight Highlight `yaml:"highlight"`
	Stripe    Stripe    `yaml:"stripe"`
	Numbering Numbering `yaml:"numbering"`
	Sort      Sort      `yaml:"sort"`
	Page      Page      `yaml:"page"`
	Edit      Edit      `yaml:"edit"`
	CSV       CSV       `yaml:"csv"`
	Search    Search    `yaml:"search"`
}

// Default returns the configuration every widget starts from.
func Default() Config {
	return Config{
		Style: Style{
			Table:   "table-default",
			Head:    "head-default",
			Body:    "body-default",
			Caption: "caption-default",
		},
		Hover: Hover{
			Head:          true,
			Body:          true,
			HeadClass:     "hoverhead-default",
			HeadCellClass: "hoverheadtd-default",
			BodyClass:     "hoverbody-default",
		},
		Highlight: Highlight{
			Enabled:      true,
			Class:        "highlight-default",
			OnClick:      false,
			OnClickClass: "clicklight-default",
		},
		Stripe: Stripe{
			Enabled:  true,
			OddClass: "odd-default",
		},
		Numbering: Numbering{
			Enabled: true,
			Class:   "num-default",
		},
		Sort: Sort{
			Enabled:        true,
			ResetNumbering: true,
			SortedClass:    "sorted-default",
			ClickableClass: "clickable-default",
			OnClickClass:   "onclick-default",
			AscClass:       "sortasc-default",
			DescClass:      "sortdesc-default",
			AscImage:       "/static/tquery/images/down.png",
			DescImage:      "/static/tquery/images/up.png",
		},
		Page: Page{
			Enabled:     false,
			RowsPerPage: 10,
		},
		CSV: CSV{
			Separator: ",",
			Quoting:   QuotingNone,
		},
		Search: Search{
			Enabled:       false,
			InputID:       "filter",
			CaseSensitive: false,
		},
	}
}

// Option mutates a Config under construction.
type Option func(*Config)

// New returns the default configuration with the options applied.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPagination enables pagination with the given page size.
func WithPagination(rowsPerPage int) Option {
	return func(c *Config) {
		c.Page.Enabled = true
		c.Page.RowsPerPage = rowsPerPage
	}
}

// WithSearch enables the live filter.
func WithSearch(caseSensitive bool) Option {
	return func(c *Config) {
		c.Search.Enabled = true
		c.Search.CaseSensitive = caseSensitive
	}
}

// WithEditing enables inline cell editing.
func WithEditing() Option {
	return func(c *Config) { c.Edit.Enabled = true }
}

// WithNumbering turns the row number column on or off.
func WithNumbering(enabled bool) Option {
	return func(c *Config) { c.Numbering.Enabled = enabled }
}

// WithSorting turns click-to-sort on or off.
func WithSorting(enabled bool) Option {
	return func(c *Config) { c.Sort.Enabled = enabled }
}

// WithSortType declares the sort type of the column with the given header.
func WithSortType(header string, t columns.SortType) Option {
	return func(c *Config) {
		if c.Sort.Types == nil {
			c.Sort.Types = make(map[string]columns.SortType)
		}
		c.Sort.Types[header] = t
	}
}

// WithClickHighlight enables highlighting every cell equal to a clicked one.
func WithClickHighlight() Option {
	return func(c *Config) { c.Highlight.OnClick = true }
}

// WithCSV sets the separator and quoting rule.
func WithCSV(separator string, quoting Quoting) Option {
	return func(c *Config) {
		c.CSV.Separator = separator
		c.CSV.Quoting = quoting
	}
}

// Clone returns a copy that shares no maps with c.
func (c Config) Clone() Config {
	out := c
	if c.Sort.Types != nil {
		out.Sort.Types = make(map[string]columns.SortType, len(c.Sort.Types))
		for k, v := range c.Sort.Types {
			out.Sort.Types[k] = v
		}
	}
	return out
}

// SeparatorRune returns the CSV separator, defaulting to a comma.
func (c Config) SeparatorRune() rune {
	if c.CSV.Separator == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.CSV.Separator)
	return r
}

// Validate reports settings the widget cannot honour.
func (c Config) Validate() error {
	if c.Page.Enabled && c.Page.RowsPerPage < 1 {
		return fmt.Errorf("config: page.rows_per_page must be at least 1, got %d", c.Page.RowsPerPage)
	}
	if utf8.RuneCountInString(c.CSV.Separator) > 1 {
		return fmt.Errorf("config: csv.separator must be a single character, got %q", c.CSV.Separator)
	}
	switch c.CSV.Quoting {
	case "", QuotingNone, QuotingRFC4180:
	default:
		return fmt.Errorf("config: unknown csv.quoting %q", c.CSV.Quoting)
	}
	return nil
}

// Overlay decodes YAML on top of c, leaving unmentioned fields untouched.
func (c Config) Overlay(data []byte) (Config, error) {
	out := c.Clone()
	if err := yaml.Unmarshal(data, &out); err != nil {
		return c, fmt.Errorf("config: parse: %w", err)
	}
	return out, out.Validate()
}

// LoadFile reads a widget configuration from a YAML file on top of the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Default().Overlay(data)
}
