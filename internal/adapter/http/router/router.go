// Package router wires the controllers into the chi router that fronts the
// ledger service.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouteRegistrar is implemented by controllers that attach their endpoints
// to a router.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

func New(registrars ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("healthy"))
	})

	r.Route("/api", func(api chi.Router) {
		for _, registrar := range registrars {
			if registrar != nil {
				registrar.RegisterRoutes(api)
			}
		}
	})

	return r
}
