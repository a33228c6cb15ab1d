package chiscalar

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/webasoo/docsecrets/scalar"
)

// Handler exposes the underlying net/http handler for advanced routing setups.
func Handler(spec []byte) http.Handler {
	return scalar.Handler(spec)
}

// Register wires the Scalar UI under /scalar for the provided chi router.
func Register(router chi.Router, spec []byte) {
	handler := Handler(spec)
	router.Handle("/scalar", handler)
	router.Handle("/scalar/*", handler)
}

// Mount attaches the Scalar UI at pattern, e.g. "/docs", as a sub-router.
func Mount(router chi.Router, pattern string, spec []byte) {
	handler := http.StripPrefix(pattern, Handler(spec))
	router.Route(pattern, func(r chi.Router) {
		r.Get("/", handler.ServeHTTP)
		r.Get("/*", handler.ServeHTTP)
	})
}

// RegisterFile loads an OpenAPI document from disk and mounts the Scalar UI routes.
func RegisterFile(router chi.Router, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chiscalar: read spec %q: %w", path, err)
	}
	Register(router, data)
	return nil
}
