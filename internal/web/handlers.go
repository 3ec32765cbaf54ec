package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Karfearsw/dealexpressio-sub001/internal/core"
	"github.com/Karfearsw/dealexpressio-sub001/internal/logging"
)

type importResponse struct {
	Success     bool             `json:"success"`
	Imported    int              `json:"imported"`
	Failed      int              `json:"failed"`
	InsertedIDs []string         `json:"insertedIds"`
	Errors      []core.RowError  `json:"errors,omitempty"`
}

// handleImport accepts a multipart form with file, format and userId fields
// and runs the batch import pipeline.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxPayloadSize)

	if err := r.ParseMultipartForm(s.cfg.Import.MaxPayloadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File exceeds the %d byte limit", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "File data is required")
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File data is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil || len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "File data is required")
		return
	}

	format, err := core.ParseFormat(r.FormValue("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format. Use csv or excel")
		return
	}

	report, err := s.pipeline.ImportBatch(r.Context(), payload, format, userID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUserIDRequired):
			writeError(w, http.StatusBadRequest, "User ID is required")
		case errors.Is(err, core.ErrPayloadRequired):
			writeError(w, http.StatusBadRequest, "File data is required")
		case errors.Is(err, core.ErrUnknownFormat):
			writeError(w, http.StatusBadRequest, "Invalid format. Use csv or excel")
		default:
			logging.FromContext(r.Context()).Error("import failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to import data", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:     true,
		Imported:    report.Imported,
		Failed:      report.Failed,
		InsertedIDs: report.InsertedIDs,
		Errors:      report.RowErrors,
	})
}

// handleExport streams the caller's leads as a downloadable file in the
// requested format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	format, err := core.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format. Use csv or excel")
		return
	}

	payload, err := s.pipeline.ExportBatch(r.Context(), format, userID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUserIDRequired):
			writeError(w, http.StatusBadRequest, "User ID is required")
		case errors.Is(err, core.ErrUnknownFormat):
			writeError(w, http.StatusBadRequest, "Invalid format. Use csv or excel")
		default:
			logging.FromContext(r.Context()).Error("export failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to export data")
		}
		return
	}

	w.Header().Set("Content-Type", payload.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload.Bytes)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			logging.FromContext(r.Context()).Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
