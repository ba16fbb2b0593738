package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dgallion1/broodsire/internal/ranking"
	"github.com/dgallion1/broodsire/internal/report"
	"github.com/go-chi/chi/v5"
)

// parseQuery reads from, to, limit, order and q, falling back to the
// configured defaults.
func (s *Server) parseQuery(v url.Values) (ranking.Query, error) {
	q := ranking.Query{
		From:   s.cfg.YearFrom,
		To:     s.cfg.YearTo,
		Limit:  s.cfg.DefaultLimit,
		Search: strings.TrimSpace(v.Get("q")),
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"from", &q.From},
		{"to", &q.To},
		{"limit", &q.Limit},
	}
	for _, p := range ints {
		raw := v.Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%s must be an integer", p.key)
		}
		*p.dst = n
	}

	order, err := ranking.ParseOrder(v.Get("order"))
	if err != nil {
		return q, err
	}
	q.Order = order

	return q, q.Validate()
}

// handleListSires returns the ranked broodmare sires.
func (s *Server) handleListSires(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.store.Get(r.Context(), s.cfg.DocumentPath)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	writeJSON(w, report.Build(entry.Index, s.store.Classifier(), q))
}

// handleGetSire returns one sire's row regardless of the limit.
func (s *Server) handleGetSire(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "sire")
	// chi matches on RawPath when it is set, leaving the segment escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			jsonError(w, "invalid sire name", http.StatusBadRequest)
			return
		}
		name = unescaped
	}
	if strings.TrimSpace(name) == "" {
		jsonError(w, "invalid sire name", http.StatusBadRequest)
		return
	}
	q, err := s.parseQuery(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.store.Get(r.Context(), s.cfg.DocumentPath)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	row, ok := report.Sire(entry.Index, s.store.Classifier(), name, q)
	if !ok {
		jsonError(w, fmt.Sprintf("sire %q has no elite dams in %d-%d", name, q.From, q.To), http.StatusNotFound)
		return
	}
	writeJSON(w, row)
}

// handleSearchDams lists elite dams matched by sire or dam name, with
// their offspring.
func (s *Server) handleSearchDams(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))
	if keyword == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	entry, err := s.store.Get(r.Context(), s.cfg.DocumentPath)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	writeJSON(w, map[string]any{
		"query":  keyword,
		"groups": report.SearchDams(entry.Index, s.store.Classifier(), keyword),
	})
}
