package dataset

// upload.go is the admin data-entry path: parse, validate against the
// jurisdiction bound, and swap the batch atomically. Failures leave
// the previous batch untouched and are recorded alongside successes in
// an in-memory history ring.

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"centermap/internal/center"
	"centermap/internal/metrics"
)

// historyCap bounds the in-memory upload history.
const historyCap = 50

// UploadResult records one admin upload attempt.
type UploadResult struct {
	ID       string    `json:"id"`
	FileName string    `json:"fileName,omitempty"`
	At       time.Time `json:"at"`
	Rows     int       `json:"rows"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
}

// ApplyUpload runs uploaded or pasted tabular text through the parser
// and validator (bounds enforced) and, on success, replaces the whole
// active batch. On any failure the active batch is retained unchanged
// and the returned result carries the human-readable reason.
func (s *Service) ApplyUpload(fileName string, data []byte) UploadResult {
	result := UploadResult{
		ID:       uuid.NewString(),
		FileName: fileName,
		At:       time.Now().UTC(),
	}
	metrics.UploadsTotal.Inc()

	centers, err := center.Decode(data)
	if err == nil {
		bounds := s.jurisdiction
		err = center.Validate(centers, &bounds)
	}
	if err != nil {
		result.Error = err.Error()
		metrics.UploadFailures.Inc()
		slog.Warn("upload rejected", "upload_id", result.ID, "file", fileName, "error", err)
		s.history.add(result)
		return result
	}

	result.OK = true
	result.Rows = len(centers)
	s.history.add(result)
	slog.Info("upload accepted", "upload_id", result.ID, "file", fileName, "rows", result.Rows)

	s.Replace(centers)
	return result
}

// Uploads returns the recorded upload attempts, most recent first.
func (s *Service) Uploads() []UploadResult {
	return s.history.list()
}

// historyRing keeps the last N upload results.
type historyRing struct {
	mu      sync.Mutex
	entries []UploadResult
	cap     int
}

func newHistoryRing(cap int) *historyRing {
	return &historyRing{cap: cap}
}

func (h *historyRing) add(r UploadResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, r)
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}
}

func (h *historyRing) list() []UploadResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]UploadResult, len(h.entries))
	for i, e := range h.entries {
		out[len(h.entries)-1-i] = e
	}
	return out
}
