// Package jobs runs the periodic background work.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"infocomm/internal/services"
)

// Scheduler owns the recurring low-stock scan.
type Scheduler struct {
	scheduler gocron.Scheduler
	alertSvc  services.AlertService
}

func NewScheduler(alertSvc services.AlertService, scanInterval time.Duration) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(scanInterval),
		gocron.NewTask(s.scanLowStock),
		gocron.WithName("low-stock-scan"),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) scanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.alertSvc.ScanLowStock(ctx); err != nil {
		slog.Warn("low-stock scan failed", "error", err)
		return
	}
	slog.Debug("low-stock scan completed")
}

func (s *Scheduler) Start() {
	slog.Info("starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
