// Package scheduler runs the in-process billing cycle. The only recurring
// job in this system is crediting monthly interest to savings accounts.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/oyvindh/bankbook/internal/bank"
)

// Scheduler wraps a cron runner for the monthly interest job.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// New creates a stopped scheduler.
func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// ScheduleMonthlyInterest registers the interest run under the given cron
// expression (typically the first of every month).
func (s *Scheduler) ScheduleMonthlyInterest(spec string, ledger *bank.Ledger) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Info("Applying monthly interest to savings accounts")
		ledger.ApplyMonthlyInterest()
	})
	return err
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron runner, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
