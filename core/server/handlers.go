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

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mythras-eg/ttable/core/columns"
	"github.com/mythras-eg/ttable/core/csvimport"
	"github.com/mythras-eg/ttable/core/export"
	"github.com/mythras-eg/ttable/core/query"
	"github.com/mythras-eg/ttable/core/tables"
	"github.com/mythras-eg/ttable/core/views"
)

// errBadRequest marks malformed parameters.
var errBadRequest = errors.New("bad request")

// statusFor maps widget errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, query.ErrMissingParam),
		errors.Is(err, tables.ErrNoSuchColumn),
		errors.Is(err, tables.ErrNoSuchRow),
		errors.Is(err, tables.ErrNotEditable),
		errors.Is(err, csvimport.ErrURLNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, tables.ErrDisabled),
		errors.Is(err, tables.ErrNotEditing),
		errors.Is(err, csvimport.ErrStale):
		return http.StatusConflict
	case errors.Is(err, csvimport.ErrFetchStatus),
		errors.Is(err, csvimport.ErrTooLarge),
		errors.Is(err, csvimport.ErrEmptyCSV):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// widgetQuery returns the parsed request and the widget id from the route.
func widgetQuery(r *http.Request) *query.Query {
	q := query.NewQuery(r.URL)
	q.Table = chi.URLParam(r, "id")
	return q
}

// redirect sends the browser back to the widget page.
func redirect(w http.ResponseWriter, r *http.Request, q *query.Query) {
	http.Redirect(w, r, query.ForTable(q.Table).ToURL(), http.StatusSeeOther)
}

// act runs a widget operation and redirects to the widget page. An error
// is answered with its status and counted against op.
func (s *Server) act(w http.ResponseWriter, r *http.Request, op string, fn func(q *query.Query, wd *tables.Widget) error) {
	q := widgetQuery(r)
	err := s.WithWidget(q.Table, func(wd *tables.Widget) error { return fn(q, wd) })
	if err != nil {
		widgetOps.WithLabelValues(op, "error").Inc()
		writeError(w, err)
		return
	}
	widgetOps.WithLabelValues(op, "ok").Inc()
	redirect(w, r, q)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	vm := views.BuildLandingViewModel(s.title, s.subtitle, s.links())
	var buf bytes.Buffer
	if err := s.renderer.RenderLanding(&buf, vm); err != nil {
		writeError(w, fmt.Errorf("landing page rendering: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	q := widgetQuery(r)
	e, err := s.lookup(q.Table)
	if err != nil {
		writeError(w, err)
		return
	}
	e.mu.Lock()
	vm := views.BuildWidgetViewModel(e.widget, e.title, q)
	e.mu.Unlock()

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, vm); err != nil {
		writeError(w, fmt.Errorf("widget rendering: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	q := widgetQuery(r)
	var info tables.Info
	err := s.WithWidget(q.Table, func(wd *tables.Widget) error {
		info = wd.Info()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "sort", func(q *query.Query, wd *tables.Widget) error {
		col, err := q.Int("col")
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		if dir := q.Values.Get("dir"); dir != "" {
			if !wd.Config().Sort.Enabled {
				return tables.ErrDisabled
			}
			d := columns.Ascending
			switch dir {
			case "asc":
			case "desc":
				d = columns.Descending
			default:
				return fmt.Errorf("%w: dir %q", errBadRequest, dir)
			}
			return wd.SortColumn(col, d)
		}
		_, err = wd.ClickHeader(col)
		return err
	})
}

// handlePage shows page n. n=0 expands the compact page list. A page
// outside the range leaves the widget unchanged.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "page", func(q *query.Query, wd *tables.Widget) error {
		n, err := q.Int("n")
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		if n == 0 {
			wd.ExpandPages()
			return nil
		}
		if err := wd.ShowPage(n); err != nil {
			if errors.Is(err, tables.ErrPageOutOfRange) {
				widgetOps.WithLabelValues("page", "ignored").Inc()
				return nil
			}
			return err
		}
		return nil
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "search", func(q *query.Query, wd *tables.Widget) error {
		_, err := wd.Filter(q.Search())
		return err
	})
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "edit", func(q *query.Query, wd *tables.Widget) error {
		row, col, err := q.Cell()
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		_, err = wd.BeginEdit(row, col)
		return err
	})
}

// handleFinishEdit handles the Save and Discard buttons.
func (s *Server) handleFinishEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.act(w, r, "save", func(q *query.Query, wd *tables.Widget) error {
		form := &query.Query{Table: q.Table, Values: r.PostForm}
		row, col, err := form.Cell()
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		switch action := r.PostForm.Get("action"); action {
		case "save":
			return wd.SaveEdit(row, col, r.PostForm.Get("text"))
		case "discard":
			return wd.DiscardEdit(row, col)
		default:
			return fmt.Errorf("%w: action %q", errBadRequest, action)
		}
	})
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "highlight", func(q *query.Query, wd *tables.Widget) error {
		row, col, err := q.Cell()
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return wd.ToggleHighlight(row, col)
	})
}

// handleLoad replaces the rows of a widget with a remote CSV. The widget
// keeps its configuration and is rendered afresh.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	q := widgetQuery(r)
	if s.loader == nil {
		writeError(w, fmt.Errorf("%w: load is disabled", tables.ErrDisabled))
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	src := r.PostForm.Get("url")
	if src == "" {
		writeError(w, fmt.Errorf("%w: url", query.ErrMissingParam))
		return
	}
	e, err := s.lookup(q.Table)
	if err != nil {
		writeError(w, err)
		return
	}

	e.mu.Lock()
	cfg := e.widget.Config()
	caption := e.widget.Caption()
	e.mu.Unlock()

	// The fetch runs without the widget lock so the page stays usable.
	options := csvimport.OptionsFromConfig(cfg)
	options.Caption = caption
	t, err := s.loader.Load(r.Context(), q.Table, src, options, func(t *tables.Table) error {
		wd, err := tables.Render(t, cfg)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.widget = wd
		e.source = src
		e.mu.Unlock()
		return nil
	})
	if errors.Is(err, csvimport.ErrStale) {
		widgetOps.WithLabelValues("load", "ignored").Inc()
		redirect(w, r, q)
		return
	}
	if err != nil {
		widgetOps.WithLabelValues("load", "error").Inc()
		writeError(w, err)
		return
	}
	widgetOps.WithLabelValues("load", "ok").Inc()
	log.Info().Str("table", q.Table).Str("url", src).Int("rows", len(t.Rows)).Msg("loaded CSV")
	redirect(w, r, q)
}

// exporter writes a widget in one download format.
type exporter struct {
	ext         string
	contentType string
	write       func(out io.Writer, wd *tables.Widget) error
}

var (
	exportCSV = exporter{"csv", "text/csv; charset=utf-8", func(out io.Writer, wd *tables.Widget) error {
		cfg := wd.Config()
		return csvimport.ToCSV(out, wd, cfg.CSV.Separator, cfg.CSV.Quoting)
	}}
	exportXLSX = exporter{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSX}
	exportText = exporter{"txt", "text/plain; charset=utf-8", export.ASCII}
)

// handleExport serves a download with a content-hash ETag.
func (s *Server) handleExport(ex exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := widgetQuery(r)
		var buf bytes.Buffer
		err := s.WithWidget(q.Table, func(wd *tables.Widget) error { return ex.write(&buf, wd) })
		if err != nil {
			widgetOps.WithLabelValues("export_"+ex.ext, "error").Inc()
			writeError(w, err)
			return
		}
		widgetOps.WithLabelValues("export_"+ex.ext, "ok").Inc()

		etag := export.ETag(buf.Bytes())
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", ex.contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+q.Table+"."+ex.ext+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}
