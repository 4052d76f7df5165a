// Package owner runs every calendar operation on one goroutine.
//
// The calendar service has no locking of its own. Other goroutines (HTTP handlers,
// the purge schedule, the game session layer) hand it work through a Loop, which
// drains submitted commands on each tick.
package owner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"guildcalendar/internal/domain"
)

// ErrStopped is returned for work submitted after the loop has exited.
var ErrStopped = errors.New("calendar loop stopped")

// Command is a unit of work run against the calendar on the owner goroutine.
type Command func(svc domain.CalendarService)

// Observer receives calendar figures after each tick and each purge.
type Observer interface {
	ObserveCalendar(stats domain.CalendarStats)
	EventsPurged(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveCalendar(domain.CalendarStats) {}
func (nopObserver) EventsPurged(int)                     {}

type Config struct {
	TickInterval  time.Duration
	PurgeSchedule string
	Retention     time.Duration
	QueueSize     int
}

type Loop struct {
	svc       domain.CalendarService
	tick      time.Duration
	retention time.Duration
	cmds      chan Command
	stopped   chan struct{}
	cron      *cron.Cron
	observer  Observer
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a loop for svc. An empty PurgeSchedule disables the old event sweep; a
// nil observer is allowed.
func New(svc domain.CalendarService, cfg Config, observer Observer, logger *slog.Logger) (*Loop, error) {
	if observer == nil {
		observer = nopObserver{}
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	l := &Loop{
		svc:       svc,
		tick:      cfg.TickInterval,
		retention: cfg.Retention,
		cmds:      make(chan Command, cfg.QueueSize),
		stopped:   make(chan struct{}),
		cron:      cron.New(),
		observer:  observer,
		logger:    logger,
		now:       time.Now,
	}
	if cfg.PurgeSchedule != "" {
		_, err := l.cron.AddFunc(cfg.PurgeSchedule, func() {
			if err := l.Submit(l.purge); err != nil {
				l.logger.Warn("skip scheduled calendar purge", "error", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule calendar purge %q: %w", cfg.PurgeSchedule, err)
		}
	}
	return l, nil
}

// Run drives the calendar until ctx is done. Commands still queued at that point are
// run before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	l.cron.Start()
	defer func() { <-l.cron.Stop().Done() }()

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.logger.Info("calendar loop started", "tick", l.tick, "scheduled_jobs", len(l.cron.Entries()))
	for {
		select {
		case <-ctx.Done():
			l.drain()
			l.logger.Info("calendar loop stopped")
			return nil
		case <-ticker.C:
			l.drain()
			l.observer.ObserveCalendar(l.svc.Stats())
		}
	}
}

// drain runs the commands queued when it starts. Commands submitted meanwhile wait
// for the next tick.
func (l *Loop) drain() {
	for n := len(l.cmds); n > 0; n-- {
		cmd := <-l.cmds
		cmd(l.svc)
	}
}

// Submit queues cmd without waiting for it to run.
func (l *Loop) Submit(cmd Command) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}
	select {
	case l.cmds <- cmd:
		return nil
	case <-l.stopped:
		return ErrStopped
	}
}

// Do runs cmd on the owner goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, cmd Command) error {
	done := make(chan struct{})
	err := l.Submit(func(svc domain.CalendarService) {
		defer close(done)
		cmd(svc)
	})
	if err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrStopped
		}
	}
}

// PurgeOldEvents removes the events past the retention window and returns how many
// were removed.
func (l *Loop) PurgeOldEvents(ctx context.Context) (int, error) {
	var removed int
	err := l.Do(ctx, func(svc domain.CalendarService) {
		removed = l.purgeWith(svc)
	})
	if err != nil {
		// The command may still run later and write removed.
		return 0, err
	}
	return removed, nil
}

func (l *Loop) purge(svc domain.CalendarService) { l.purgeWith(svc) }

func (l *Loop) purgeWith(svc domain.CalendarService) int {
	n := svc.DeleteOldEvents(l.retention, l.now())
	l.observer.EventsPurged(n)
	return n
}
