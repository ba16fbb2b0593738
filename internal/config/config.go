package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/parser"
)

type Config struct {
	Port string

	// Source document
	DocumentPath  string
	WatchDocument bool

	// Auth; empty disables it
	APIKey string

	// Marker vocabulary
	MarkersFile    string
	EliteMarkers   []string
	DaughterMarker string
	G1Prefix       string
	G1Threshold    int

	// Query defaults
	YearFrom     int
	YearTo       int
	DefaultLimit int

	// Timeouts
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	defaults := marker.DefaultVocabulary()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocumentPath:  os.Getenv("DOCUMENT_PATH"),
		WatchDocument: envBool("WATCH_DOCUMENT", true),

		APIKey: os.Getenv("BROODSIRE_API_KEY"),

		MarkersFile:    os.Getenv("MARKERS_FILE"),
		EliteMarkers:   envList("ELITE_MARKERS", defaults.Elite),
		DaughterMarker: envOr("DAUGHTER_MARKER", defaults.Daughter),
		G1Prefix:       envOr("G1_PREFIX", defaults.G1Prefix),
		G1Threshold:    envInt("G1_THRESHOLD", defaults.G1Threshold),

		YearFrom:     envInt("YEAR_FROM", 1900),
		YearTo:       envInt("YEAR_TO", 2030),
		DefaultLimit: envInt("DEFAULT_LIMIT", 20),

		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.G1Threshold <= 0 {
		cfg.G1Threshold = defaults.G1Threshold
	}
	if cfg.DefaultLimit < 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocumentPath == "" {
		return fmt.Errorf("DOCUMENT_PATH is required")
	}
	if !parser.IsSupportedExtension(c.DocumentPath) {
		return fmt.Errorf("DOCUMENT_PATH %q: unsupported extension %q", c.DocumentPath, filepath.Ext(c.DocumentPath))
	}
	if len(c.EliteMarkers) == 0 {
		return fmt.Errorf("ELITE_MARKERS must name at least one marker")
	}
	if c.YearFrom > c.YearTo {
		return fmt.Errorf("YEAR_FROM (%d) is after YEAR_TO (%d)", c.YearFrom, c.YearTo)
	}
	return nil
}

// Vocabulary builds the marker vocabulary from the environment, then
// overlays MARKERS_FILE when set.
func (c Config) Vocabulary() (marker.Vocabulary, error) {
	v := marker.DefaultVocabulary()
	v.Elite = c.EliteMarkers
	v.Daughter = c.DaughterMarker
	v.G1Prefix = c.G1Prefix
	v.G1Threshold = c.G1Threshold

	if c.MarkersFile != "" {
		return marker.LoadVocabulary(c.MarkersFile, v)
	}
	return v, v.Validate()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blank items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
