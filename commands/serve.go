package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "bankcalc/http"
	"bankcalc/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled transfer job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	loanService := service.NewLoanService(b.loans, b.cache, cfg.CacheTTL, logger)
	termService := service.NewTermRecommendationService(logger)
	depositService := service.NewDepositService(cfg.MinDepositAmount, cfg.WithdrawalPenalty, logger)
	transferService := b.transferService()

	scheduler, err := service.NewScheduler(cfg.ScheduleSpec, transferService, logger)
	if err != nil {
		return err
	}
	scheduler.Start()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Loans:      httpLayer.NewLoanHandler(loanService, logger),
		Terms:      httpLayer.NewTermRecommendationHandler(termService, logger),
		Deposits:   httpLayer.NewDepositHandler(depositService, logger),
		Transfers:  httpLayer.NewTransferHandler(transferService, logger),
		Portfolios: httpLayer.NewPortfolioHandler(logger),
	}, httpLayer.RouterOptions{
		Limiter:        rateLimiter,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-serverErr:
		logger.WithError(runErr).Error("Error starting server")
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Error during server shutdown")
	}
	scheduler.Stop(shutdownCtx)

	logger.Info("Server exited")
	return runErr
}
