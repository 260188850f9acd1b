package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type errorResponse struct {
	Error  string             `json:"error"`
	Fields map[string]string  `json:"fields,omitempty"`
	Detail domain.FieldErrors `json:"details,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *logrus.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.WithError(err).Error("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.WithError(err).Warn("Error writing response")
	}
}

func writeError(w http.ResponseWriter, logger *logrus.Logger, status int, msg string) {
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

// decodeJSON rejects non-JSON content types and unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		writeError(w, logger, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		logger.WithError(err).Debug("Error decoding request body")
		writeError(w, logger, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, logger, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: verr.Fields.Map(),
			Detail: verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, logger, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		writeError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}
