// Package jobs schedules the periodic settlement passes. The scheduler
// is only a trigger: the interest and credit settlement logic lives in
// pkg/service and runs fine when invoked from anywhere else.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ozanselte/bankcore/pkg/config"
	"github.com/ozanselte/bankcore/pkg/service"
)

// Scheduler runs the interest and credit settlement sweeps on their
// configured cron schedules.
type Scheduler struct {
	cron     *cron.Cron
	interest *service.InterestService
	credit   *service.CreditService
	logger   *slog.Logger
}

// New creates a Scheduler.
func New(
	interest *service.InterestService,
	credit *service.CreditService,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		interest: interest,
		credit:   credit,
		logger:   logger.With("component", "scheduler"),
	}
}

// Register wires both sweeps with their schedules.
func (s *Scheduler) Register(cfg config.Jobs) error {
	if _, err := s.cron.AddFunc(cfg.InterestSchedule, s.runInterest); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.CreditSchedule, s.runCredit); err != nil {
		return err
	}
	s.logger.Info("periodic settlement registered",
		"interest_schedule", cfg.InterestSchedule,
		"credit_schedule", cfg.CreditSchedule,
	)
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runInterest() {
	result, err := s.interest.ApplySavingsInterest(context.Background())
	if err != nil {
		s.logger.Error("interest sweep failed", "error", err)
		return
	}
	s.logger.Debug("interest sweep done",
		"applied", result.Applied, "skipped", result.Skipped, "failed", result.Failed)
}

func (s *Scheduler) runCredit() {
	result, err := s.credit.ChargeDuePayments(context.Background(), time.Now().UTC())
	if err != nil {
		s.logger.Error("credit sweep failed", "error", err)
		return
	}
	s.logger.Debug("credit sweep done", "applied", result.Applied, "failed", result.Failed)
}
