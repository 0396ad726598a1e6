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

package query

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// Root is the path prefix under which widgets are served.
const Root = "/tables"

// ErrMissingParam is returned when a required parameter is absent.
var ErrMissingParam = errors.New("missing parameter")

// Query represents the parsed state of a widget URL
type Query struct {
	// Table is the widget id, taken from the path segment after Root
	Table string
	// Action is the path segment after the table id ("" for the widget page)
	Action string
	// Values holds the raw query parameters
	Values url.Values
}

// NewQuery creates a Query from a URL of the form /tables/<id>[/<action>]
func NewQuery(u *url.URL) *Query {
	q := &Query{Values: u.Query()}
	rest := strings.TrimPrefix(path.Clean(u.Path), Root+"/")
	if rest == path.Clean(u.Path) {
		return q
	}
	parts := strings.SplitN(rest, "/", 2)
	q.Table = parts[0]
	if len(parts) == 2 {
		q.Action = parts[1]
	}
	return q
}

// ForTable returns the query of a widget page.
func ForTable(id string) *Query {
	return &Query{Table: id, Values: url.Values{}}
}

// Clone creates a deep copy of the Query
func (q *Query) Clone() *Query {
	clone := &Query{Table: q.Table, Action: q.Action, Values: url.Values{}}
	for k, vs := range q.Values {
		clone.Values[k] = append([]string(nil), vs...)
	}
	return clone
}

// Int returns the integer parameter key.
func (q *Query) Int(key string) (int, error) {
	s := q.Values.Get(key)
	if s == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", key, err)
	}
	return n, nil
}

// Cell returns the row and col parameters.
func (q *Query) Cell() (row, col int, err error) {
	if row, err = q.Int("row"); err != nil {
		return 0, 0, err
	}
	if col, err = q.Int("col"); err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// Search returns the search query parameter.
func (q *Query) Search() string { return q.Values.Get("q") }

// BasePath is the widget page path, /tables/<id>.
func (q *Query) BasePath() string {
	return Root + "/" + url.PathEscape(q.Table)
}

// ToURL converts the Query back to a URL string
func (q *Query) ToURL() string {
	u := &url.URL{Path: q.BasePath()}
	if q.Action != "" {
		u.Path += "/" + q.Action
	}
	u.RawQuery = q.Values.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (q *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(q.ToURL())
}

// action returns a clone for the given action with the given parameters,
// dropping every other parameter.
func (q *Query) action(name string, kv ...string) safehtml.URL {
	next := &Query{Table: q.Table, Action: name, Values: url.Values{}}
	for i := 0; i+1 < len(kv); i += 2 {
		next.Values.Set(kv[i], kv[i+1])
	}
	return next.ToSafeURL()
}

// View returns the URL of the widget page.
func (q *Query) View() safehtml.URL { return q.action("") }

// WithSort returns the header click URL of column col
func (q *Query) WithSort(col int) safehtml.URL {
	return q.action("sort", "col", strconv.Itoa(col))
}

// WithPage returns the URL of page button n
func (q *Query) WithPage(n int) safehtml.URL {
	return q.action("page", "n", strconv.Itoa(n))
}

// WithExpandedPages returns the ellipsis click URL
func (q *Query) WithExpandedPages() safehtml.URL {
	return q.action("page", "n", "0")
}

// WithEdit returns the double-click URL of a cell
func (q *Query) WithEdit(row, col int) safehtml.URL {
	return q.action("edit", "row", strconv.Itoa(row), "col", strconv.Itoa(col))
}

// WithHighlight returns the click-highlight URL of a cell
func (q *Query) WithHighlight(row, col int) safehtml.URL {
	return q.action("highlight", "row", strconv.Itoa(row), "col", strconv.Itoa(col))
}

// SearchAction is the target of the search form
func (q *Query) SearchAction() safehtml.URL { return q.action("search") }

// EditAction is the target of the Save and Discard forms
func (q *Query) EditAction() safehtml.URL { return q.action("edit") }

// LoadAction is the target of the load CSV form
func (q *Query) LoadAction() safehtml.URL { return q.action("load") }

// Export returns the download URL for a format such as "csv" or "xlsx"
func (q *Query) Export(format string) safehtml.URL {
	return q.action("export." + format)
}

// Info returns the URL of the JSON info snapshot
func (q *Query) Info() safehtml.URL { return q.action("info") }
