// Package site serves the embedded questionnaire page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the questionnaire page and its assets at / to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", Handler())
}

// Handler serves the embedded files. Only GET and HEAD are answered.
func Handler() http.Handler {
	files := http.FileServer(FS())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		files.ServeHTTP(w, r)
	})
}
