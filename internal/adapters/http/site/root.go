// Package site serves the embedded radar chart page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("chart site serve failed")
)

// Prefix is where the chart page is mounted.
const Prefix = "/chart/"

// Register attaches the chart page routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle(Prefix, http.StripPrefix(Prefix, http.FileServer(FS())))
	mux.Handle("/chart", http.RedirectHandler(Prefix, http.StatusMovedPermanently))
}
