package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
)

// StaticHandler serves the browser widget assets (polling scripts and
// stylesheets) from a directory on disk.
type StaticHandler struct {
	dir    string
	logger *logger.Logger
}

// NewStaticHandler creates a static file handler rooted at dir
func NewStaticHandler(dir string, log *logger.Logger) *StaticHandler {
	return &StaticHandler{
		dir:    dir,
		logger: log.Named("static"),
	}
}

// ServeHTTP serves the requested asset. Paths escaping the root are
// rejected.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.dir, rel)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	switch filepath.Ext(full) {
	case ".js":
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	case ".css":
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Cache-Control", "public, max-age=300")

	http.ServeFile(w, r, full)
}
