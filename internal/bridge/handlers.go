package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// captureResponse is the widget-facing result envelope.
type captureResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// backupRequest carries the serialized document to back up.
type backupRequest struct {
	JSON string `json:"json"`
}

// handleCapture implements the save-from-page contract: the widget submits
// title, content, a comma-separated tag string, and a source label; the
// prompt lands in the reserved category of the shared document.
func handleCapture(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in library.CapturedPrompt
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, captureResponse{OK: false, Error: "malformed request body"})
			return
		}

		id, err := library.SaveFromPage(r.Context(), d.Store, d.Log, d.Clock, in)
		if err != nil {
			status := http.StatusInternalServerError
			if isValidation(err) {
				// Validation failures are part of the contract; the
				// widget renders the reason itself.
				status = http.StatusOK
			}
			writeJSON(w, status, captureResponse{OK: false, Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, captureResponse{OK: true, ID: id})
	}
}

// handleBackup implements the one-way backup trigger. Failures are logged,
// never returned to the initiating UI: backups are best-effort.
func handleBackup(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in backupRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			d.Log.Warn("backup request undecodable", logger.Error(err))
			w.WriteHeader(http.StatusAccepted)
			return
		}

		if err := d.Backup.Write(r.Context(), []byte(in.JSON)); err != nil {
			d.Log.Error("backup failed", logger.Error(err))
		} else {
			d.Log.Info("backup written", logger.String("path", d.Backup.Path()))
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// handleLibrary serves the current canonical document snapshot for the
// widget's read-only views.
func handleLibrary(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Library.Document())
	}
}

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// isValidation reports whether err is one of the mutator validation
// sentinels rather than a storage or internal failure.
func isValidation(err error) bool {
	for _, target := range []error{
		types.ErrTitleRequired,
		types.ErrContentRequired,
		types.ErrCategoryRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
