package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type DepositHandler struct {
	service *service.DepositService
	logger  *logrus.Logger
	now     func() time.Time
}

func NewDepositHandler(service *service.DepositService, logger *logrus.Logger) *DepositHandler {
	return &DepositHandler{service: service, logger: logger, now: time.Now}
}

func (h *DepositHandler) Maturity(w http.ResponseWriter, r *http.Request) {
	var input domain.DepositInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Maturity(input)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *DepositHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var input domain.DepositInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	quote, err := h.service.Quote(input, h.now())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, quote)
}

func (h *DepositHandler) PrematureWithdrawal(w http.ResponseWriter, r *http.Request) {
	var input domain.WithdrawalInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.PrematureWithdrawal(input)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
