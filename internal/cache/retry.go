package cache

import (
	"math/rand/v2"
	"time"

	"github.com/dgallion1/broodsire/internal/parser"
)

// maxReloadAttempts bounds watcher-driven reloads of a file that is still
// being written.
const maxReloadAttempts = 4

// isTransient reports whether a load failure may clear on its own, as when
// an editor truncates the file before writing the new content.
func isTransient(err error) bool {
	switch parser.KindOf(err) {
	case parser.KindEmpty, parser.KindUnreadable:
		return true
	}
	return false
}

// backoff returns a delay for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
	if base > 2*time.Second {
		base = 2 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
