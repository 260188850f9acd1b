package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type PortfolioHandler struct {
	logger *logrus.Logger
}

func NewPortfolioHandler(logger *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{logger: logger}
}

type summaryRequest struct {
	Holdings []domain.Holding `json:"holdings"`
}

func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	summary, err := service.Summarize(req.Holdings)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, summary)
}

type riskRequest struct {
	Answers []int `json:"answers"`
}

func (h *PortfolioHandler) RiskProfile(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	assessment, err := service.AssessRisk(req.Answers)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, assessment)
}
