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

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/csvimport"
	"github.com/mythras-eg/ttable/core/tables"
)

// CsvLoader implements DataSourceLoader for CSV files and URLs.
//
// Preset fields:
//   - path: CSV file, or
//   - url: remote CSV fetched with the csvimport Loader
//
// The separator and quoting come from the preset's widget configuration.
type CsvLoader struct {
	remote *csvimport.Loader
}

// NewCsvLoader creates a CSV loader. remote may be nil, in which case
// presets with a url fail to load.
func NewCsvLoader(remote *csvimport.Loader) *CsvLoader {
	return &CsvLoader{remote: remote}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return SourceCSV
}

// Load reads the CSV named by the preset.
func (l *CsvLoader) Load(ctx context.Context, preset config.TablePreset) (*tables.Table, error) {
	cfg, err := preset.WidgetConfig()
	if err != nil {
		return nil, err
	}
	options := csvimport.OptionsFromConfig(cfg)
	options.Caption = preset.Title

	switch {
	case preset.Path != "":
		return csvimport.ImportFromFile(preset.Path, preset.ID, options)
	case preset.URL != "":
		if l.remote == nil {
			return nil, fmt.Errorf("remote CSV loading is disabled")
		}
		return l.remote.Load(ctx, preset.ID, preset.URL, options, nil)
	default:
		return nil, fmt.Errorf("path or url is required")
	}
}
