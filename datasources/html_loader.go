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
	"github.com/mythras-eg/ttable/core/htmlimport"
	"github.com/mythras-eg/ttable/core/tables"
)

// HTMLLoader implements DataSourceLoader for tables embedded in an HTML
// document. The preset's table_id selects the element; without it the
// first table of the document is used.
type HTMLLoader struct{}

// NewHTMLLoader creates an HTML loader.
func NewHTMLLoader() *HTMLLoader {
	return &HTMLLoader{}
}

// SourceType returns "html".
func (l *HTMLLoader) SourceType() string {
	return SourceHTML
}

// Load parses the document at preset.Path.
func (l *HTMLLoader) Load(_ context.Context, preset config.TablePreset) (*tables.Table, error) {
	if preset.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	f, err := os.Open(preset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	var t *tables.Table
	if preset.TableID != "" {
		t, err = htmlimport.Parse(f, preset.TableID)
	} else {
		var all []*tables.Table
		all, err = htmlimport.ParseAll(f)
		if err == nil {
			if len(all) == 0 {
				return nil, htmlimport.ErrTableNotFound
			}
			t = all[0]
		}
	}
	if err != nil {
		return nil, err
	}
	t.ID = preset.ID
	if t.Caption == "" {
		t.Caption = preset.Title
	}
	return t, nil
}
