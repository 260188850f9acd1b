package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  *logrus.Logger
	now     func() time.Time
}

func NewLoanHandler(service *service.LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger, now: time.Now}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

type scheduleRequest struct {
	domain.LoanInput
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD, today when empty
}

type scheduleResponse struct {
	Summary      domain.LoanResult    `json:"summary"`
	Installments []domain.Installment `json:"installments"`
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	start := h.now()
	if req.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		start = parsed
	}

	summary, err := h.service.CalculateLoan(r.Context(), req.LoanInput)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	installments, err := h.service.Schedule(r.Context(), req.LoanInput, start)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, scheduleResponse{Summary: summary, Installments: installments})
}
