package api

import (
	"net/http"
	"time"

	"github.com/dgallion1/broodsire/internal/cache"
)

type documentInfo struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Hash      string    `json:"content_hash"`
	Nodes     int       `json:"nodes"`
	Links     int       `json:"links"`
	Sires     int       `json:"sires"`
	EliteDams int       `json:"elite_dams"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func newDocumentInfo(e *cache.Entry) documentInfo {
	return documentInfo{
		Path:      e.Path,
		Title:     e.Tree.Title,
		Hash:      e.Hash,
		Nodes:     e.Index.Nodes,
		Links:     e.Index.Links,
		Sires:     len(e.Index.Sires),
		EliteDams: e.Index.DamCount(),
		LoadedAt:  e.LoadedAt,
	}
}

// handleDocument describes the currently indexed document.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), s.cfg.DocumentPath)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}
	writeJSON(w, newDocumentInfo(entry))
}

// handleReload drops the cached index and rebuilds it from disk.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.store.Invalidate(s.cfg.DocumentPath)
	entry, err := s.store.Get(r.Context(), s.cfg.DocumentPath)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}
	writeJSON(w, newDocumentInfo(entry))
}
