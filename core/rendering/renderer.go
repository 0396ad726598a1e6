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

package rendering

import (
	"embed"
	"io"
	"io/fs"

	"github.com/google/safehtml/template"

	"github.com/mythras-eg/ttable/core/views"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// WidgetRenderer handles rendering of widget view models to HTML
type WidgetRenderer struct {
	templates *template.Template
}

// NewWidgetRenderer parses every page template into one set.
func NewWidgetRenderer() (*WidgetRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	templates, err := template.New("ttable").ParseFS(trustedFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &WidgetRenderer{templates: templates}, nil
}

// Render renders a WidgetViewModel to the provided writer
func (r *WidgetRenderer) Render(w io.Writer, vm views.WidgetViewModel) error {
	return r.templates.ExecuteTemplate(w, "widget.html", vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *WidgetRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.templates.ExecuteTemplate(w, "landing.html", vm)
}

// Static returns the stylesheet and sort images, rooted so that
// "ttable.css" is served as /static/ttable.css.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
