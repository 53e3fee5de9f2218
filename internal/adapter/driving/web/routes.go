package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all browser client routes on the provided mux.
// The SPA shell is served at /, /login, and /dashboard; static assets come
// from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes all serve the same shell; the client router picks the view.
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /login", h.Index)
	mux.HandleFunc("GET /dashboard", h.Index)
}
