package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const scheduledRunTimeout = 5 * time.Minute

// Scheduler runs due scheduled transfers on a cron spec. A run still in
// progress makes the next tick a no-op.
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

func NewScheduler(spec string, transfers *TransferService, logger *logrus.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
		defer cancel()

		logger.Info("Processing scheduled transfers")
		completed, failed, err := transfers.ProcessScheduled(ctx)
		if err != nil {
			logger.WithError(err).Error("Scheduled transfer run aborted")
			return
		}
		logger.WithFields(logrus.Fields{
			"completed": completed,
			"failed":    failed,
		}).Info("Scheduled transfer run finished")
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduled transfer run still in progress at shutdown")
	}
}
