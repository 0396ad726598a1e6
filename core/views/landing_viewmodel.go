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

package views

import (
	"sort"

	"github.com/google/safehtml"

	"github.com/mythras-eg/ttable/core/query"
)

// LandingViewModel lists the served widgets.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableLink
}

// TableLink is one entry of the landing page.
type TableLink struct {
	ID      string
	Title   string
	Source  string
	Rows    int
	URL     safehtml.URL
	CSVURL  safehtml.URL
	XLSXURL safehtml.URL
}

// NewTableLink builds the landing entry of a widget.
func NewTableLink(id, title, source string, rows int) TableLink {
	q := query.ForTable(id)
	if title == "" {
		title = id
	}
	return TableLink{
		ID:      id,
		Title:   title,
		Source:  source,
		Rows:    rows,
		URL:     q.View(),
		CSVURL:  q.Export("csv"),
		XLSXURL: q.Export("xlsx"),
	}
}

// BuildLandingViewModel sorts the links by title.
func BuildLandingViewModel(title, subtitle string, links []TableLink) LandingViewModel {
	sorted := append([]TableLink(nil), links...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })
	return LandingViewModel{Title: title, Subtitle: subtitle, Tables: sorted}
}
