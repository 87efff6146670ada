// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package web

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/metrics"
	"github.com/tomtom215/coursegraph/internal/models"
	"github.com/tomtom215/coursegraph/internal/validation"
)

const (
	formCourseSearch  = "course_search"
	testTitleCookie   = "coursegraph_test_title"
	testTitleLifetime = 300 // seconds

	msgEnterTitle    = "Please enter a course title to search."
	msgNoSimilar     = "No similar courses found in the knowledge graph"
	msgCourseMissing = "Course not found in knowledge graph"
)

// builderData drives the search and course builder pages.
type builderData struct {
	Results      []models.SearchResult
	GraphData    *models.CourseGraph
	ShowBuilder  bool
	InitialTitle string
	Courses      []models.CourseSummary
}

func (h *Handler) addCourse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addFlash(r, categoryDanger, "Could not read the submitted form")
		h.redirect(w, r, "/add_course")
		return
	}

	sub := parseSubmission(r.PostForm)
	missing := validation.MissingFields(&sub)
	if len(missing) > 0 {
		addFlash(r, categoryWarning, "Missing fields: "+strings.Join(missing, ", "))
	}

	username := auth.UsernameFromContext(r.Context())
	var err error
	switch {
	case sub.Course.Title == "":
		addFlash(r, categoryDanger, "A course title is required to store a course")
		h.redirect(w, r, "/add_course")
		return
	case h.store == nil:
		addFlash(r, categoryDanger, "Course could not be stored: the database is not reachable")
		h.redirect(w, r, "/add_course")
		return
	default:
		err = h.store.StoreCourse(r.Context(), username, &sub)
	}
	metrics.RecordSubmission("web", len(missing), err)
	h.audit.LogCourseSubmission(r.Context(), username, sub.Course.Title, len(missing), err, audit.SourceFromRequest(r, channelWeb))

	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("title", sub.Course.Title).Msg("Failed to store course")
		addFlash(r, categoryDanger, "Course could not be stored, please try again later")
	} else {
		logging.Ctx(r.Context()).Info().Str("title", sub.Course.Title).Int("missing_fields", len(missing)).Msg("Course stored")
		addFlash(r, categorySuccess, "Course stored")
	}
	h.redirect(w, r, "/add_course")
}

// search runs a title search for the builder pages, flashing feedback.
// It reports whether any result was found.
func (h *Handler) search(r *http.Request, title string, data *builderData) bool {
	data.InitialTitle = title
	data.Results = h.catalog.SearchSimilar(title, "", 0)
	if len(data.Results) == 0 {
		addFlash(r, categoryInfo, msgNoSimilar)
		return false
	}
	data.GraphData = &data.Results[0].Graph
	return true
}

func (h *Handler) builderPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := &builderData{Results: []models.SearchResult{}}
		if r.Method == http.MethodPost && r.PostFormValue("form_name") == formCourseSearch {
			if q := strings.TrimSpace(r.PostFormValue("course_title")); q == "" {
				addFlash(r, categoryWarning, msgEnterTitle)
			} else {
				data.ShowBuilder = h.search(r, q, data)
			}
		}
		h.render(w, r, http.StatusOK, name, title, data)
	}
}

// testSubmit stores the searched title in a short-lived cookie and
// redirects so reloading the result page does not resubmit the form.
func (h *Handler) testSubmit(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("form_name") == formCourseSearch {
		if q := strings.TrimSpace(r.PostFormValue("course_title")); q != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     testTitleCookie,
				Value:    url.QueryEscape(q),
				Path:     "/test",
				MaxAge:   testTitleLifetime,
				HttpOnly: true,
				Secure:   h.cookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		} else {
			addFlash(r, categoryWarning, "Please enter a course title to begin.")
		}
	}
	h.redirect(w, r, "/test")
}

func (h *Handler) testPage(w http.ResponseWriter, r *http.Request) {
	data := &builderData{}
	if title := popTestTitle(w, r); title != "" {
		data.ShowBuilder = true
		h.search(r, title, data)
	}
	h.render(w, r, http.StatusOK, "test", "Create course", data)
}

func popTestTitle(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(testTitleCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: testTitleCookie, Path: "/test", MaxAge: -1})
	title, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}

func (h *Handler) courses(w http.ResponseWriter, r *http.Request) {
	data := &builderData{Results: []models.SearchResult{}}
	if r.Method == http.MethodPost && r.PostFormValue("form_name") == formCourseSearch {
		if q := strings.TrimSpace(r.PostFormValue("course_title")); q == "" {
			addFlash(r, categoryWarning, msgEnterTitle)
		} else {
			h.search(r, q, data)
		}
	}
	data.Courses = h.catalog.ListCourses()
	h.render(w, r, http.StatusOK, "courses", "Courses", data)
}

func (h *Handler) courseDetail(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.catalog.CourseDetail(chi.URLParam(r, "*"))
	if !ok {
		if alt := r.URL.Query().Get("id"); alt != "" {
			detail, ok = h.catalog.CourseDetail(alt)
		}
	}
	if !ok {
		addFlash(r, categoryWarning, msgCourseMissing)
		h.redirect(w, r, "/courses")
		return
	}
	h.render(w, r, http.StatusOK, "course_detail", detail.Name, detail)
}

func (h *Handler) courseFragment(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeAlert(w, http.StatusBadRequest, "Missing course identifier.")
		return
	}
	detail, ok := h.catalog.CourseDetail(id)
	if !ok {
		writeAlert(w, http.StatusNotFound, "Course not found in the knowledge graph.")
		return
	}
	h.renderFragment(w, r, detail)
}

func writeAlert(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="alert alert-warning mb-0">` + template.HTMLEscapeString(message) + `</div>`))
}
