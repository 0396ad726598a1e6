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
	"math"
	"strconv"
	"strings"
)

// SortKey is the typed value derived from a cell's text for one sort
// operation. Alpha keys compare as strings, digit and date keys as numbers.
type SortKey struct {
	Type SortType
	Str  string
	Num  float64
}

// KeyOf derives the sort key of text for the given sort type.
func KeyOf(t SortType, text string) SortKey {
	upper := strings.ToUpper(text)
	switch t {
	case SortDigit:
		return SortKey{Type: t, Num: ParseLeadingFloat(stripNonNumericPrefix(upper))}
	case SortDate:
		return SortKey{Type: t, Num: parseDateMillis(strings.TrimSpace(text))}
	default:
		return SortKey{Type: SortAlpha, Str: upper}
	}
}

// Compare returns -1, 0 or 1. Keys of different types compare by type tag.
func Compare(a, b SortKey) int {
	if a.Type != b.Type {
		if a.Type < b.Type {
			return -1
		}
		return 1
	}
	if a.Type == SortAlpha {
		return strings.Compare(a.Str, b.Str)
	}
	return compareFloat64s(a.Num, b.Num)
}

// CompareDirected applies the direction to Compare. Unparsable numeric
// keys stay last in both directions.
func CompareDirected(a, b SortKey, dir Direction) int {
	if a.Type != SortAlpha && a.Type == b.Type {
		aNaN, bNaN := math.IsNaN(a.Num), math.IsNaN(b.Num)
		if aNaN || bNaN {
			return compareFloat64s(a.Num, b.Num)
		}
	}
	cmp := Compare(a, b)
	if dir == Descending {
		return -cmp
	}
	return cmp
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// stripNonNumericPrefix drops the leading run of characters that are
// neither ASCII digits nor '.', so "$12.50" becomes "12.50".
func stripNonNumericPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		if (s[i] >= '0' && s[i] <= '9') || s[i] == '.' {
			return s[i:]
		}
	}
	return ""
}

// ParseLeadingFloat parses the longest decimal literal at the start of s,
// ignoring anything after it ("12.5kg" is 12.5). Returns NaN when s does
// not start with a number.
func ParseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	// optional exponent, only consumed when it has digits
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for expDigits < len(s) && s[expDigits] >= '0' && s[expDigits] <= '9' {
			expDigits++
		}
		if expDigits > exp {
			end = expDigits
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// overflow still yields ±Inf from ParseFloat
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}
