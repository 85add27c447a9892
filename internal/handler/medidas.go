package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rfcoelho/medidas/internal/domain"
)

// saveRequest is the POST /api/medidas body. json.Unmarshal enforces the
// "both fields must be arrays" rule: a non-array value fails with an
// UnmarshalTypeError, which maps to 400. Missing fields decode to nil and are
// treated as empty.
type saveRequest struct {
	Measurements []domain.Measurement    `json:"measurements"`
	Sets         []domain.MeasurementSet `json:"sets"`
}

// GetDocument handles GET /api/medidas.
// Returns the full stored document; a store that was never written returns an
// empty document, not an error.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "load document", "error", err)
		documentOps.WithLabelValues("load", "error").Inc()
		writeError(w, http.StatusInternalServerError, "failed to read measurements")
		return
	}
	documentOps.WithLabelValues("load", "ok").Inc()
	writeJSON(w, http.StatusOK, doc)
}

// SaveDocument handles POST /api/medidas.
// The body must carry measurements and sets as JSON arrays; the stored
// document (with server-stamped lastUpdate) is echoed back in the envelope.
func (s *Server) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "measurements and sets must be JSON arrays")
		return
	}

	doc := domain.Document{
		Measurements: req.Measurements,
		Sets:         req.Sets,
	}

	saved, err := s.docs.Save(r.Context(), doc)
	if err != nil {
		if errors.Is(err, domain.ErrFormat) {
			writeError(w, http.StatusBadRequest, "malformed document")
			return
		}
		slog.ErrorContext(r.Context(), "save document", "error", err)
		documentOps.WithLabelValues("save", "error").Inc()
		writeError(w, http.StatusInternalServerError, "failed to save measurements")
		return
	}
	documentOps.WithLabelValues("save", "ok").Inc()
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: saved})
}
