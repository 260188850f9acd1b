package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Loans      *LoanHandler
	Terms      *TermRecommendationHandler
	Deposits   *DepositHandler
	Transfers  *TransferHandler
	Portfolios *PortfolioHandler
}

type RouterOptions struct {
	Limiter        *RateLimiter
	RequestTimeout time.Duration
	Logger         *logrus.Logger
}

func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(RateLimitMiddleware(opts.Limiter, opts.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, opts.Logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/loans", func(r chi.Router) {
		r.Post("/emi", h.Loans.CalculateLoan)
		r.Post("/schedule", h.Loans.Schedule)
		r.Post("/recommend-term", h.Terms.RecommendTerm)
	})

	r.Route("/deposits", func(r chi.Router) {
		r.Post("/maturity", h.Deposits.Maturity)
		r.Post("/quote", h.Deposits.Quote)
		r.Post("/premature-withdrawal", h.Deposits.PrematureWithdrawal)
	})

	r.Route("/transfers", func(r chi.Router) {
		r.Post("/", h.Transfers.Submit)
		r.Post("/validate", h.Transfers.Validate)
		r.Post("/review", h.Transfers.Review)
		r.Get("/schedule-dates", h.Transfers.ScheduleDates)
		r.Get("/{id}", h.Transfers.Get)
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Post("/summary", h.Portfolios.Summary)
		r.Post("/risk-profile", h.Portfolios.RiskProfile)
	})

	return r
}
