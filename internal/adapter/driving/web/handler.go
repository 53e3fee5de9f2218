// Package web is the browser client driving adapter. It serves the embedded
// single-page application shell and its static assets; all data flows through
// the JSON API, not through server-rendered pages.
package web

import (
	"log/slog"
	"net/http"
)

// Handler serves the SPA shell for every page route. Client-side routing
// decides which view to render from the request path.
type Handler struct {
	index  []byte
	logger *slog.Logger
}

// NewHandler loads the SPA shell from the embedded assets.
func NewHandler(logger *slog.Logger) (*Handler, error) {
	index, err := StaticFS.ReadFile("static/index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{index: index, logger: logger}, nil
}

// Index serves the SPA shell. The same markup backs /, /login, and
// /dashboard; the client router takes over after load.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.index); err != nil {
		h.logger.Error("failed to write spa shell", "error", err)
	}
}
