package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the built single-page client from a local directory,
// falling back to the index document for client-side routes.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))

	if !strings.HasPrefix(requested, filepath.Clean(h.dir)) {
		http.NotFound(w, r)
		return
	}

	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		http.ServeFile(w, r, requested)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, h.index))
}
