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
	"os"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/export"
	"github.com/mythras-eg/ttable/core/tables"
)

// XlsxLoader implements DataSourceLoader for Excel workbooks. The preset's
// table_id names the sheet; without it the first sheet is read.
type XlsxLoader struct{}

// NewXlsxLoader creates an XLSX loader.
func NewXlsxLoader() *XlsxLoader {
	return &XlsxLoader{}
}

// SourceType returns "xlsx".
func (l *XlsxLoader) SourceType() string {
	return SourceXLSX
}

// Load reads the workbook at preset.Path.
func (l *XlsxLoader) Load(_ context.Context, preset config.TablePreset) (*tables.Table, error) {
	if preset.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	f, err := os.Open(preset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	t, err := export.FromXLSX(f, preset.ID, preset.TableID)
	if err != nil {
		return nil, err
	}
	t.Caption = preset.Title
	return t, nil
}
