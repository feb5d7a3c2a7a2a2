// Package scheduler fires the daily housekeeping pass: refreshing
// date-sensitive reminders and purging old paid invoices.
package scheduler

import (
	"context"
	"time"

	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/config"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const pollInterval = time.Minute

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Config   config.Config
	Reminder reminderdomain.Recomputer
	Invoices invoicedomain.Service
}

// Scheduler watches for the calendar day to roll over. Reminders depend
// on "today", so they go stale at midnight even with no data changes.
type Scheduler struct {
	log       *zap.Logger
	clock     clock.Clock
	reminder  reminderdomain.Recomputer
	invoices  invoicedomain.Service
	retention time.Duration

	lastDay string
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(p Params) *Scheduler {
	retentionDays := p.Config.InvoiceRetentionDays
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &Scheduler{
		log:       p.Log.Named("scheduler"),
		clock:     p.Clock,
		reminder:  p.Reminder,
		invoices:  p.Invoices,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runCtx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			s.done = make(chan struct{})
			go s.run(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.cancel != nil {
				s.cancel()
				<-s.done
			}
			return nil
		},
	})
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs the daily pass if the calendar day changed since the last
// invocation. The first call always fires.
func (s *Scheduler) Tick(ctx context.Context) {
	day := s.clock.Now().Format("2006-01-02")
	if day == s.lastDay {
		return
	}
	s.lastDay = day

	s.log.Info("daily housekeeping", zap.String("day", day))
	s.reminder.Recompute(ctx)
	if _, err := s.invoices.PurgePaid(ctx, s.retention); err != nil {
		s.log.Warn("invoice purge failed", zap.Error(err))
	}
}
