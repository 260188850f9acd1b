package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type TransferHandler struct {
	service *service.TransferService
	logger  *logrus.Logger
	now     func() time.Time
}

func NewTransferHandler(service *service.TransferService, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{service: service, logger: logger, now: time.Now}
}

// Validate runs the stateless amount checks. Each limit the request leaves
// at zero falls back to the configured one.
func (h *TransferHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	configured := h.service.Limits()
	if req.Limits.PerTransaction.IsZero() {
		req.Limits.PerTransaction = configured.PerTransaction
	}
	if req.Limits.Daily.IsZero() {
		req.Limits.Daily = configured.Daily
	}
	if req.Limits.Monthly.IsZero() {
		req.Limits.Monthly = configured.Monthly
	}

	writeJSON(w, h.logger, http.StatusOK, service.ValidateTransfer(req))
}

func (h *TransferHandler) Review(w http.ResponseWriter, r *http.Request) {
	var form domain.TransferForm
	if !decodeJSON(w, r, h.logger, &form) {
		return
	}

	review, err := h.service.Review(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, review)
}

func (h *TransferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form domain.TransferForm
	if !decodeJSON(w, r, h.logger, &form) {
		return
	}

	t, err := h.service.Submit(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, t)
}

func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid transfer id")
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, t)
}

func (h *TransferHandler) ScheduleDates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string][]string{
		"dates": service.ScheduleDateOptions(h.now()),
	})
}
