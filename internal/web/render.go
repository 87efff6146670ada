// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialGlob  = "templates/_*.html"
	fragmentName = "course_fragment"
)

// pageSet holds one template tree per page, each parsed together with the
// shared layout and the partials (files starting with an underscore).
type pageSet struct {
	pages    map[string]*template.Template
	fragment *template.Template
}

var templateFuncs = template.FuncMap{
	"join":       strings.Join,
	"pathEscape": url.PathEscape,
	"isTrue":     func(b *bool) bool { return b != nil && *b },
	"isFalse":    func(b *bool) bool { return b != nil && !*b },
}

func loadPages() (*pageSet, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	fragment, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, partialGlob)
	if err != nil {
		return nil, fmt.Errorf("parse fragment template: %w", err)
	}

	set := &pageSet{pages: make(map[string]*template.Template), fragment: fragment}
	for _, file := range files {
		base := path.Base(file)
		if file == layoutFile || strings.HasPrefix(base, "_") {
			continue
		}
		name := strings.TrimSuffix(base, ".html")
		t, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, layoutFile, partialGlob, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		set.pages[name] = t
	}
	return set, nil
}

// pageData is passed to every page template.
type pageData struct {
	Title       string
	User        string
	CurrentYear int
	Flashes     []Flash
	Data        any
}

// render executes a page into a buffer first so template errors become a
// clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := h.pages.pages[name]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("page", name).Msg("Unknown page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:       title,
		User:        auth.UsernameFromContext(r.Context()),
		CurrentYear: time.Now().Year(),
		Flashes:     h.consumeFlashes(w, r),
		Data:        data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Template execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderFragment(w http.ResponseWriter, r *http.Request, data any) {
	var buf bytes.Buffer
	if err := h.pages.fragment.ExecuteTemplate(&buf, fragmentName, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Fragment execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
