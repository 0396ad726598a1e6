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
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/tables"
)

// Manager handles loading and caching of table presets.
// Presets are registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Presets indexed by table id
	presets map[string]config.TablePreset
	// Registration order of preset ids
	order []string

	// Cached tables indexed by table id - populated lazily
	tables map[string]*tables.Table

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager.
func NewManager() *Manager {
	return &Manager{
		presets: make(map[string]config.TablePreset),
		tables:  make(map[string]*tables.Table),
		loaders: make(map[string]DataSourceLoader),
	}
}

// SetBaseDir sets the directory relative preset paths are resolved against.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// RegisterLoader registers a loader for its source type, replacing any
// loader previously registered for the same type.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// AddPreset registers a table preset. Its data is not loaded.
func (m *Manager) AddPreset(p config.TablePreset) error {
	if p.ID == "" {
		return fmt.Errorf("preset without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.presets[p.ID]; ok {
		return fmt.Errorf("duplicate preset %q", p.ID)
	}
	if _, ok := m.loaders[p.Source]; !ok {
		return fmt.Errorf("no loader registered for source type %q", p.Source)
	}
	m.presets[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

// GetPreset returns the preset registered under id.
func (m *Manager) GetPreset(id string) (config.TablePreset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.presets[id]
	return p, ok
}

// GetPresetIDs returns the registered preset ids in registration order.
func (m *Manager) GetPresetIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// GetSourceTypes returns the registered source types, sorted.
func (m *Manager) GetSourceTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]string, 0, len(m.loaders))
	for t := range m.loaders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// LoadData loads the table of a preset.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(ctx context.Context, id string) (*tables.Table, error) {
	m.mu.RLock()
	if t, ok := m.tables[id]; ok {
		m.mu.RUnlock()
		return t, nil
	}
	preset, ok := m.presets[id]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("preset %q not found", id)
	}
	loader, hasLoader := m.loaders[preset.Source]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", preset.Source)
	}

	preset = resolvePresetPath(preset, baseDir)
	t, err := loader.Load(ctx, preset)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %q: %w", id, err)
	}
	if t.Caption == "" {
		t.Caption = preset.Title
	}
	log.Debug().Str("table", id).Str("source", preset.Source).Int("rows", len(t.Rows)).Msg("loaded table")

	m.mu.Lock()
	m.tables[id] = t
	m.mu.Unlock()
	return t, nil
}

// resolvePresetPath resolves a relative file path against baseDir.
func resolvePresetPath(p config.TablePreset, baseDir string) config.TablePreset {
	if baseDir != "" && p.Path != "" && !filepath.IsAbs(p.Path) {
		p.Path = filepath.Join(baseDir, p.Path)
	}
	return p
}

// InvalidateCache removes a table from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
}

// IsLoaded returns whether the table of a preset is currently cached.
func (m *Manager) IsLoaded(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[id]
	return ok
}
