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

package datasources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

var rankLabels = [...]string{1: "Rabble", 2: "Novice", 3: "Skilled", 4: "Veteran", 5: "Master"}

// RankLabel formats a template rank as "N Label". Unknown ranks yield the
// bare number.
func RankLabel(rank int) string {
	if rank > 0 && rank < len(rankLabels) {
		return strconv.Itoa(rank) + " " + rankLabels[rank]
	}
	return strconv.Itoa(rank)
}

// ResultsTable builds the enemy template list from search results.
func ResultsTable(id string, results []SearchResult) *tables.Table {
	t := tables.NewTable(id, "Starred", "Name", "Race", "Rank", "Owner", "Tags")
	t.SetSortType("Rank", columns.SortDigit)
	t.Caption = fmt.Sprintf("%d templates found.", len(results))
	for _, r := range results {
		star := ""
		if r.Starred {
			star = "*"
		}
		t.AddRow(star, r.Name, r.Race, RankLabel(r.Rank), r.Owner, strings.Join(r.Tags, ", "))
	}
	return t
}

// SearchLoader implements DataSourceLoader on top of the search endpoint.
// The preset's query is the search string.
type SearchLoader struct {
	client *RestClient
}

// NewSearchLoader creates a search loader.
func NewSearchLoader(client *RestClient) *SearchLoader {
	return &SearchLoader{client: client}
}

// SourceType returns "search".
func (l *SearchLoader) SourceType() string {
	return SourceSearch
}

// Load runs the preset's search.
func (l *SearchLoader) Load(ctx context.Context, preset config.TablePreset) (*tables.Table, error) {
	results, err := l.client.Search(ctx, SearchParams{String: preset.Query})
	if err != nil {
		return nil, err
	}
	return ResultsTable(preset.ID, results), nil
}
