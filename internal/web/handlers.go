package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"centermap/internal/center"
	"centermap/internal/logging"
)

// handleIndex serves the embedded map page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"centers": len(s.service.Centers()),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMap returns the full derived state: projection, viewport,
// tag universe, and filter state. The map page renders from this one
// document.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Derived())
}

// handleCenters returns the raw active batch.
func (s *Server) handleCenters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Centers())
}

// handleTags returns the selectable tag universe.
func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	d := s.service.Derived()
	writeJSON(w, map[string]any{"tags": d.Tags, "active": d.ActiveTags})
}

// handleSetQuery replaces the free-text query.
func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	s.service.SetQuery(body.Query)
	writeJSON(w, s.service.Derived())
}

// handleSetTags replaces the active tag selection wholesale.
func (s *Server) handleSetTags(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	s.service.SetTags(body.Tags)
	writeJSON(w, s.service.Derived())
}

// handleToggleTag flips a single tag.
func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Tag) == "" {
		writeError(w, r, http.StatusBadRequest, "tag is required")
		return
	}
	active := s.service.ToggleTag(body.Tag)
	d := s.service.Derived()
	writeJSON(w, map[string]any{"tag": body.Tag, "active": active, "visible": d.Visible})
}

// handleExport streams the active batch in the tabular format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := center.Encode(s.service.Centers())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="centers.csv"`)
	w.Write(data)
}

// handleTemplate serves the header-only CSV template.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="centers-template.csv"`)
	w.Write(center.Template())
}

// handleUpload accepts a multipart file or pasted text and, on
// success, replaces the active batch. Failures keep the previous
// batch and report the reason; the view never crashes on bad input.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	data, fileName, err := readUploadBody(r, s.cfg.Admin.MaxUploadSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := s.service.ApplyUpload(fileName, data)
	if !result.OK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(result)
		return
	}

	logger.Info("admin upload applied", "upload_id", result.ID, "rows", result.Rows)
	writeJSON(w, result)
}

// readUploadBody extracts tabular text from a multipart "file" part
// or a "text" form field.
func readUploadBody(r *http.Request, maxSize int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return nil, "", fmt.Errorf("upload too large or malformed")
		}
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return nil, "", fmt.Errorf("read upload: %v", err)
			}
			return data, header.Filename, nil
		}
		if text := r.FormValue("text"); text != "" {
			return []byte(text), "pasted", nil
		}
		return nil, "", fmt.Errorf(`provide a "file" part or a "text" field`)
	}

	// Raw body: treated as pasted text.
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %v", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty upload")
	}
	return data, "pasted", nil
}

// handleReload re-runs the public resolver, bypassing its cache, and
// swaps in whatever it finds. An empty result is applied as-is; an
// intentionally empty map is valid.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.resolver.Flush()
	res := s.resolver.Load(r.Context())
	s.service.Replace(res.Centers)

	logging.FromContext(r.Context()).Info("dataset reloaded",
		"origin", res.Origin, "centers", len(res.Centers))
	writeJSON(w, map[string]any{"origin": res.Origin, "centers": len(res.Centers)})
}

// handleUploadHistory lists recorded upload attempts, newest first.
func (s *Server) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Uploads())
}
