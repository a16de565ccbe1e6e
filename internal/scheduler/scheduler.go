package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"lyonoffices/server/internal/ingestion"
)

// Scheduler triggers a periodic full reload of the transaction log so the
// dashboard keeps tracking the sheet without anyone pressing refresh.
type Scheduler struct {
	importer *ingestion.Importer
	logger   *logrus.Logger
	cron     *cron.Cron
}

func NewScheduler(importer *ingestion.Importer, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		importer: importer,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the sync job on the given cron expression and launches
// the cron loop.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.runSync)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("schedule", schedule).Info("Sync scheduler started")
	return nil
}

func (s *Scheduler) runSync() {
	s.logger.Info("Starting scheduled sync")
	report := s.importer.Run(context.Background())
	if !report.Success {
		s.logger.WithField("error", report.Error).Error("Scheduled sync failed")
		return
	}
	s.logger.WithField("count", report.Count).Info("Scheduled sync completed")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sync scheduler stopped")
}
