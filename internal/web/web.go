// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package web serves the HTML interface: static pages, registration and
// login, the course submission form, the course search/builder pages and
// the RDF course catalog.
//
// Handlers follow post/redirect/get. Feedback is carried to the next page
// in a flash cookie and rendered by the shared layout.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/knowledge"
	"github.com/tomtom215/coursegraph/internal/models"
)

// CourseStore persists course submissions.
type CourseStore interface {
	StoreCourse(ctx context.Context, username string, sub *models.CourseSubmission) error
}

// Config wires the web handler's dependencies. Store and Accounts may be
// nil when Neo4j is unavailable; the affected pages then report an error.
type Config struct {
	Catalog      *knowledge.Catalog
	Store        CourseStore
	Accounts     *auth.Accounts
	Sessions     *auth.SessionMiddleware
	Audit        *audit.Logger
	CookieSecure bool
}

// Handler serves the HTML interface.
type Handler struct {
	catalog      *knowledge.Catalog
	store        CourseStore
	accounts     *auth.Accounts
	sessions     *auth.SessionMiddleware
	audit        *audit.Logger
	pages        *pageSet
	cookieSecure bool
}

// New parses the embedded templates and returns a Handler.
func New(cfg Config) (*Handler, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		catalog:      cfg.Catalog,
		store:        cfg.Store,
		accounts:     cfg.Accounts,
		sessions:     cfg.Sessions,
		audit:        cfg.Audit,
		pages:        pages,
		cookieSecure: cfg.CookieSecure,
	}, nil
}

// Routes registers the HTML routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(withFlashes)
		r.Use(h.sessions.Authenticate)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/welcome", http.StatusFound)
		})
		r.Get("/welcome", h.staticPage("welcome", "Welcome"))
		r.Get("/home", h.staticPage("home", "Home"))
		r.Get("/about", h.staticPage("about", "About"))
		r.Get("/licensing", h.staticPage("licensing", "Licensing"))
		r.Get("/examples", h.staticPage("examples", "Examples"))

		r.Get("/register", h.staticPage("register", "Register"))
		r.Post("/register", h.register)
		r.Get("/login", h.staticPage("login", "Log in"))
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.requireLogin)
			r.Get("/add_course", h.staticPage("add_course", "Add course"))
			r.Post("/add_course", h.addCourse)
		})

		r.Get("/create_course", h.builderPage("create_course", "Create course"))
		r.Post("/create_course", h.builderPage("create_course", "Create course"))
		r.Get("/complete_course", h.builderPage("complete_course", "Complete course"))
		r.Post("/complete_course", h.builderPage("complete_course", "Complete course"))
		r.Get("/test", h.testPage)
		r.Post("/test", h.testSubmit)

		r.Get("/courses", h.courses)
		r.Post("/courses", h.courses)
		r.Get("/courses/details", h.courseFragment)
		r.Get("/courses/*", h.courseDetail)
	})
}

// requireLogin redirects anonymous users to the login page.
func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.SubjectFromContext(r.Context()) == nil {
			addFlash(r, categoryWarning, "Please log in to access this page")
			h.redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) staticPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, name, title, nil)
	}
}
