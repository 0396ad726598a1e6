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

// Package server serves table widgets over HTTP. Every user event of a
// widget is a request that mutates the widget and redirects back to its
// page, which renders the current state.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/csvimport"
	"github.com/mythras-eg/ttable/core/rendering"
	"github.com/mythras-eg/ttable/core/tables"
	"github.com/mythras-eg/ttable/core/views"
)

// ErrTableNotFound is returned for unknown widget ids.
var ErrTableNotFound = errors.New("table not found")

// entry is one served widget. HTTP handlers run concurrently, so every
// access to the widget holds mu.
type entry struct {
	mu     sync.Mutex
	widget *tables.Widget
	title  string
	source string
}

// Server represents the application server with all its dependencies
type Server struct {
	renderer *rendering.WidgetRenderer
	loader   *csvimport.Loader
	title    string
	subtitle string

	mu      sync.RWMutex
	widgets map[string]*entry
}

// Option configures a Server.
type Option func(*Server)

// WithTitle sets the landing page title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(s *Server) {
		s.title = title
		s.subtitle = subtitle
	}
}

// WithLoader enables the load action, which replaces a widget's rows with
// a remote CSV.
func WithLoader(l *csvimport.Loader) Option {
	return func(s *Server) { s.loader = l }
}

// NewServer creates a server without widgets.
func NewServer(opts ...Option) (*Server, error) {
	renderer, err := rendering.NewWidgetRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	s := &Server{
		renderer: renderer,
		title:    "ttable",
		widgets:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register renders t with cfg and serves it under t.ID. Registering an id
// twice replaces the previous widget.
func (s *Server) Register(title, source string, t *tables.Table, cfg config.Config) error {
	w, err := tables.Render(t, cfg)
	if err != nil {
		return fmt.Errorf("register %q: %w", t.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets[t.ID] = &entry{widget: w, title: title, source: source}
	widgetsServed.Set(float64(len(s.widgets)))
	return nil
}

// lookup returns the entry of a widget id.
func (s *Server) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.widgets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, id)
	}
	return e, nil
}

// WithWidget runs fn with exclusive access to the widget id.
func (s *Server) WithWidget(id string, fn func(w *tables.Widget) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.widget)
}

// links returns the landing page entries.
func (s *Server) links() []views.TableLink {
	s.mu.RLock()
	entries := make(map[string]*entry, len(s.widgets))
	for id, e := range s.widgets {
		entries[id] = e
	}
	s.mu.RUnlock()

	links := make([]views.TableLink, 0, len(entries))
	for id, e := range entries {
		e.mu.Lock()
		rows := e.widget.Info().Rows
		e.mu.Unlock()
		links = append(links, views.NewTableLink(id, e.title, e.source, rows))
	}
	return links
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(zerologMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleLanding)
	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(rendering.Static()))))

	r.Route("/tables/{id}", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Get("/info", s.handleInfo)
		r.Get("/sort", s.handleSort)
		r.Get("/page", s.handlePage)
		r.Get("/search", s.handleSearch)
		r.Get("/edit", s.handleBeginEdit)
		r.Post("/edit", s.handleFinishEdit)
		r.Get("/highlight", s.handleHighlight)
		r.Post("/load", s.handleLoad)
		r.Get("/export.csv", s.handleExport(exportCSV))
		r.Get("/export.xlsx", s.handleExport(exportXLSX))
		r.Get("/export.txt", s.handleExport(exportText))
	})
	return r
}
