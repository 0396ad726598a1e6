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

package columns

import (
	"fmt"
	"strings"
)

// SortType selects how the text of a column is turned into a sort key.
type SortType int

const (
	// SortAlpha compares upper-cased text.
	SortAlpha SortType = iota
	// SortDigit compares the number found after any leading non-numeric prefix.
	SortDigit
	// SortDate compares the parsed date as epoch milliseconds.
	SortDate
)

// String returns the tag used in configuration files and header classes.
func (t SortType) String() string {
	switch t {
	case SortAlpha:
		return "alpha"
	case SortDigit:
		return "digit"
	case SortDate:
		return "date"
	default:
		return "unknown"
	}
}

// Class returns the header class that declares this sort type.
func (t SortType) Class() string {
	return "sort-" + t.String()
}

// ParseSortType accepts "alpha", "digit", "date" and the matching
// "sort-*" header classes.
func ParseSortType(s string) (SortType, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "sort-") {
	case "", "alpha":
		return SortAlpha, nil
	case "digit":
		return SortDigit, nil
	case "date":
		return SortDate, nil
	}
	return SortAlpha, fmt.Errorf("unknown sort type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t SortType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so sort types can be
// spelled out in YAML and JSON.
func (t *SortType) UnmarshalText(b []byte) error {
	parsed, err := ParseSortType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SortTypeFromClasses returns the sort type declared by a space separated
// class attribute, defaulting to SortAlpha. The last declaration wins.
func SortTypeFromClasses(classAttr string) SortType {
	st := SortAlpha
	for _, class := range strings.Fields(classAttr) {
		switch class {
		case "sort-alpha":
			st = SortAlpha
		case "sort-digit":
			st = SortDigit
		case "sort-date":
			st = SortDate
		}
	}
	return st
}

// Direction is the order a column is sorted in.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}
