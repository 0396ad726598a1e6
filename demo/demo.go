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

// Package demo provides the sample tables the widget server registers
// when started with demo tables enabled.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/csvimport"
	"github.com/mythras-eg/ttable/core/htmlimport"
	"github.com/mythras-eg/ttable/core/tables"
)

//go:embed data/enemy_templates.csv
var enemyTemplatesCSV string

//go:embed data/parties.csv
var partiesCSV string

//go:embed data/hit_locations.html
var hitLocationsHTML string

// Entry is one demo widget.
type Entry struct {
	Title  string
	Source string
	Table  *tables.Table
	Config config.Config
}

// importTable is a helper function to import an embedded CSV table with
// the widget's CSV settings and sort types.
func importTable(id, caption, csv string, cfg config.Config) (*tables.Table, error) {
	options := csvimport.OptionsFromConfig(cfg)
	options.Caption = caption
	t, err := csvimport.ImportFromReader(strings.NewReader(csv), id, options)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s CSV: %w", id, err)
	}
	return t, nil
}

// EnemyTemplatesConfig is the configuration of the enemy template list:
// sortable, searchable and without row numbers.
func EnemyTemplatesConfig() config.Config {
	cfg := config.New(
		config.WithSearch(false),
		config.WithNumbering(false),
		config.WithSortType("Rank", columns.SortDigit),
	)
	cfg.Search.InputID = "searchinput"
	return cfg
}

// PartiesConfig is the configuration of the party list: paged, editable,
// with click highlighting.
func PartiesConfig() config.Config {
	return config.New(
		config.WithPagination(5),
		config.WithEditing(),
		config.WithClickHighlight(),
		config.WithSortType("Members", columns.SortDigit),
		config.WithSortType("Created", columns.SortDate),
		config.WithSortType("Gold", columns.SortDigit),
	)
}

// HitLocationsConfig is the configuration of the hit location table.
func HitLocationsConfig() config.Config {
	return config.New(
		config.WithSortType("D20", columns.SortDigit),
		config.WithSortType("AP", columns.SortDigit),
		config.WithSortType("HP", columns.SortDigit),
	)
}

// CreateEnemyTemplatesTable creates the enemy template list from embedded CSV
func CreateEnemyTemplatesTable() (*tables.Table, error) {
	return importTable("enemy_template_list", "Enemy templates", enemyTemplatesCSV, EnemyTemplatesConfig())
}

// CreatePartiesTable creates the party list from embedded CSV
func CreatePartiesTable() (*tables.Table, error) {
	return importTable("party_list", "Parties", partiesCSV, PartiesConfig())
}

// CreateHitLocationsTable reads the hit location table from an embedded
// HTML document.
func CreateHitLocationsTable() (*tables.Table, error) {
	t, err := htmlimport.Parse(strings.NewReader(hitLocationsHTML), "hit_locations")
	if err != nil {
		return nil, fmt.Errorf("failed to parse hit locations: %w", err)
	}
	return t, nil
}

// Tables returns every demo widget.
func Tables() ([]Entry, error) {
	enemies, err := CreateEnemyTemplatesTable()
	if err != nil {
		return nil, err
	}
	parties, err := CreatePartiesTable()
	if err != nil {
		return nil, err
	}
	hits, err := CreateHitLocationsTable()
	if err != nil {
		return nil, err
	}
	return []Entry{
		{Title: "Enemy templates", Source: "demo csv", Table: enemies, Config: EnemyTemplatesConfig()},
		{Title: "Parties", Source: "demo csv", Table: parties, Config: PartiesConfig()},
		{Title: "Hit locations", Source: "demo html", Table: hits, Config: HitLocationsConfig()},
	}, nil
}
