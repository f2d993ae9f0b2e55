// Package source decides where record batches come from in public
// mode: the published snapshot document first, the raw tabular
// fallback second, and an intentionally empty batch when neither is
// available. Load failures are diagnostics, not errors.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"centermap/internal/center"
)

// maxFetchBytes caps remote document reads.
const maxFetchBytes = 10 << 20

const cacheKey = "batch"

// Origin names which source produced a batch.
type Origin string

const (
	OriginSnapshot Origin = "snapshot"
	OriginCSV      Origin = "csv"
	OriginNone     Origin = "none"
)

// Config locates the published documents. Refs may be HTTP(S) URLs or
// local file paths.
type Config struct {
	SnapshotRef string
	CSVRef      string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// Result is a loaded batch plus where it came from.
type Result struct {
	Centers []center.Center
	Origin  Origin
}

// Resolver loads public batches with a short-lived cache so repeated
// reloads do not refetch the published documents.
type Resolver struct {
	cfg    Config
	client *http.Client
	cache  *gocache.Cache
}

// New builds a resolver. Timeout defaults to 10s, cache TTL to 1m.
func New(cfg Config) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &Resolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// Load resolves the current public batch. It never returns an error:
// the worst outcome is an empty batch with OriginNone. Structural
// validation runs on every loaded batch; the geographic bounds check
// is skipped because published data is trusted.
func (r *Resolver) Load(ctx context.Context) Result {
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.(Result)
	}

	if res, ok := r.loadSnapshot(ctx); ok {
		r.cache.Set(cacheKey, res, gocache.DefaultExpiration)
		return res
	}
	if res, ok := r.loadCSV(ctx); ok {
		r.cache.Set(cacheKey, res, gocache.DefaultExpiration)
		return res
	}

	slog.Warn("no published data available, serving empty batch",
		"snapshot", r.cfg.SnapshotRef, "csv", r.cfg.CSVRef)
	return Result{Centers: []center.Center{}, Origin: OriginNone}
}

// Flush drops the cached batch so the next Load refetches.
func (r *Resolver) Flush() {
	r.cache.Delete(cacheKey)
}

func (r *Resolver) loadSnapshot(ctx context.Context) (Result, bool) {
	data, err := r.fetch(ctx, r.cfg.SnapshotRef)
	if err != nil {
		slog.Debug("snapshot unavailable", "ref", r.cfg.SnapshotRef, "error", err)
		return Result{}, false
	}

	var centers []center.Center
	if err := json.Unmarshal(data, &centers); err != nil {
		slog.Warn("snapshot is not a center array, falling back", "ref", r.cfg.SnapshotRef, "error", err)
		return Result{}, false
	}
	if len(centers) == 0 {
		slog.Debug("snapshot is empty, falling back", "ref", r.cfg.SnapshotRef)
		return Result{}, false
	}
	if err := center.Validate(centers, nil); err != nil {
		slog.Warn("snapshot failed validation, falling back", "ref", r.cfg.SnapshotRef, "error", err)
		return Result{}, false
	}
	return Result{Centers: centers, Origin: OriginSnapshot}, true
}

func (r *Resolver) loadCSV(ctx context.Context) (Result, bool) {
	data, err := r.fetch(ctx, r.cfg.CSVRef)
	if err != nil {
		slog.Debug("csv fallback unavailable", "ref", r.cfg.CSVRef, "error", err)
		return Result{}, false
	}

	centers, err := center.Decode(data)
	if err != nil {
		slog.Warn("csv fallback failed to parse", "ref", r.cfg.CSVRef, "error", err)
		return Result{}, false
	}
	if err := center.Validate(centers, nil); err != nil {
		slog.Warn("csv fallback failed validation", "ref", r.cfg.CSVRef, "error", err)
		return Result{}, false
	}
	return Result{Centers: centers, Origin: OriginCSV}, true
}

// fetch reads a document from an HTTP(S) URL or the local filesystem.
func (r *Resolver) fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("not configured")
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	}
	return os.ReadFile(ref)
}
