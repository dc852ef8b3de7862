package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/storage"
)

// FileOpener reads back uploads kept on local disk.
type FileOpener interface {
	Open(key string) (*os.File, error)
}

// serveFile streams a stored motorbike image.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := s.files.Open(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(r.Context(), w, domain.NotFound("FILE_NOT_FOUND", "file not found"))
			return
		}
		writeError(r.Context(), w, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "failed to stream file", "key", key, "error", err)
	}
}
