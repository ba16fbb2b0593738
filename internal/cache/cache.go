// Package cache memoizes document extraction. Each (path, content hash) is
// parsed and indexed once; the published Entry is immutable and shared by
// every reader.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/broodsire/internal/doctree"
	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/parser"
	"github.com/dgallion1/broodsire/internal/pedigree"
	"golang.org/x/sync/singleflight"
)

// Entry is one indexed document. Never mutate it.
type Entry struct {
	Path     string
	Hash     string
	Tree     *doctree.DocTree
	Index    *pedigree.Index
	LoadedAt time.Time

	seq uint64 // read sequence of the bytes it was built from
}

// Store is the process-wide extraction cache.
//
// Thread Safety:
//
//	Store is safe for concurrent use. Builds for the same path and content
//	are collapsed into one with singleflight.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	floor      map[string]uint64 // reads at or below this were invalidated
	reads      atomic.Uint64
	flight     singleflight.Group
	classifier *marker.Classifier
	log        *slog.Logger
}

// New creates an empty Store that indexes documents with c.
func New(c *marker.Classifier, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		entries:    make(map[string]*Entry),
		floor:      make(map[string]uint64),
		classifier: c,
		log:        log,
	}
}

// Classifier returns the marker classifier used to build entries.
func (s *Store) Classifier() *marker.Classifier {
	return s.classifier
}

// Get returns the indexed document at path, rebuilding it when the file's
// content hash differs from the cached one. Source errors are returned as
// *parser.SourceError and are never cached.
func (s *Store) Get(ctx context.Context, path string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq := s.reads.Add(1)
	data, err := parser.ReadSource(path)
	if err != nil {
		buildErrorsTotal.WithLabelValues(string(parser.KindOf(err))).Inc()
		return nil, err
	}
	hash := ContentHashHex(data)

	s.mu.RLock()
	entry, ok := s.entries[path]
	s.mu.RUnlock()
	if ok && entry.Hash == hash {
		lookupsTotal.WithLabelValues("hit").Inc()
		return entry, nil
	}
	lookupsTotal.WithLabelValues("miss").Inc()

	ch := s.flight.DoChan(path+"@"+hash, func() (any, error) {
		return s.build(path, hash, data, seq)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Entry), nil
	}
}

func (s *Store) build(path, hash string, data []byte, seq uint64) (*Entry, error) {
	start := time.Now()
	tree, err := parser.Decode(data, path)
	if err != nil {
		buildErrorsTotal.WithLabelValues(string(parser.KindOf(err))).Inc()
		s.log.Error("document load failed", "path", path, "error", err)
		return nil, err
	}
	ix := pedigree.Extract(tree, s.classifier)
	elapsed := time.Since(start)
	buildDuration.Observe(elapsed.Seconds())

	entry := &Entry{
		Path:     path,
		Hash:     hash,
		Tree:     tree,
		Index:    ix,
		LoadedAt: time.Now(),
		seq:      seq,
	}
	if published := s.publish(entry); published != entry {
		return published, nil
	}

	s.log.Info("document indexed",
		"path", path,
		"hash", hash[:12],
		"nodes", ix.Nodes,
		"links", ix.Links,
		"sires", len(ix.Sires),
		"elite_dams", ix.DamCount(),
		"duration_ms", elapsed.Milliseconds(),
	)
	return entry, nil
}

// publish stores e unless the cache already holds the same content, holds
// content read after e's, or path was invalidated after e was read. It
// returns the entry callers should receive.
func (s *Store) publish(e *Entry) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[e.Path]
	switch {
	case ok && cur.Hash == e.Hash:
		return cur
	case ok && cur.seq > e.seq:
		return e
	case e.seq <= s.floor[e.Path]:
		return e
	}
	s.entries[e.Path] = e
	return e
}

// Invalidate drops the cached entry for path; the next Get rebuilds it.
// Builds already in flight for path are not published.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	_, ok := s.entries[path]
	delete(s.entries, path)
	s.floor[path] = s.reads.Load()
	s.mu.Unlock()
	if ok {
		invalidationsTotal.Inc()
		s.log.Info("document cache invalidated", "path", path)
	}
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
