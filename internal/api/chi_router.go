// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/middleware"
)

// WebRoutes registers the HTML interface on the root router.
type WebRoutes interface {
	Routes(r chi.Router)
}

// Router assembles the API handler, its middleware and the HTML routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	tokens        *auth.TokenMiddleware
	web           WebRoutes
}

// NewRouter creates a Router. web may be nil to serve the API only.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, tokens *auth.TokenMiddleware, web WebRoutes) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	if tokens != nil {
		tokens.Unauthorized = func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Unauthorized("Authentication required")
		}
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		tokens:        tokens,
		web:           web,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.With(router.chiMiddleware.RateLimitHealth()).Get("/status", router.handler.LegacyStatus)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).NotFound("Endpoint not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
		})

		r.With(router.chiMiddleware.RateLimitHealth()).Get("/status", router.handler.Status)

		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAuth())
			r.Post("/register", router.handler.Register)
			r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/courses", router.handler.CatalogCourses)
			r.Get("/courses/detail", router.handler.CatalogCourseDetail)
			r.Get("/search", router.handler.CatalogSearch)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			if router.tokens != nil {
				r.Use(router.tokens.RequireAuth)
			} else {
				r.Use(denyAll)
			}
			r.With(router.chiMiddleware.RateLimitWrite()).Post("/", router.handler.SubmitCourse)
			r.Get("/similar", router.handler.SimilarCourses)
			r.Get("/complementary", router.handler.ComplementaryContent)
		})

		r.Route("/account", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			if router.tokens != nil {
				r.Use(router.tokens.RequireAuth)
			} else {
				r.Use(denyAll)
			}
			r.Get("/activity", router.handler.AccountActivity)
		})
	})

	if router.web != nil {
		router.web.Routes(r)
	}

	return r
}

// denyAll guards authenticated routes when no token middleware is wired.
func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Unauthorized("Authentication required")
	})
}
