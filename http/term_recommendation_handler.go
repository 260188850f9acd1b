package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  *logrus.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger *logrus.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.RecommendTerm(input)
	if err != nil {
		h.logger.WithError(err).Debug("Error recommending term")
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
