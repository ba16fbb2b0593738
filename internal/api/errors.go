package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/broodsire/internal/parser"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// statusForKind maps a source error kind to its HTTP status.
func statusForKind(kind parser.ErrorKind) int {
	switch kind {
	case parser.KindNotFound:
		return http.StatusNotFound
	case parser.KindUnreadable, parser.KindEmpty:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeLoadError reports a failure to obtain the indexed document.
// Source errors carry their kind so clients can tell them apart.
func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		jsonError(w, "request cancelled", http.StatusServiceUnavailable)
		return
	}
	kind := parser.KindOf(err)
	if kind == "" {
		s.log.Error("document load failed", "path", s.cfg.DocumentPath, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	s.log.Warn("document unavailable", "kind", kind, "error", err, "request_id", requestID(r))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(kind))
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"kind":  string(kind),
	})
}
