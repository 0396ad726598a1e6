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

// Package datasources loads the tables served by the widget server from
// CSV files or URLs, HTML documents, XLSX workbooks and the search API.
package datasources

import (
	"context"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

// Source types understood by the built-in loaders.
const (
	SourceCSV    = "csv"
	SourceHTML   = "html"
	SourceXLSX   = "xlsx"
	SourceSearch = "search"
)

// DataSourceLoader is the interface implemented by every source type.
type DataSourceLoader interface {
	// SourceType returns the identifier matched against TablePreset.Source.
	SourceType() string

	// Load builds the table described by preset. The table id must be
	// preset.ID.
	Load(ctx context.Context, preset config.TablePreset) (*tables.Table, error)
}
