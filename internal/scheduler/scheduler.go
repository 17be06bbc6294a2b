// Package scheduler drives the pipeline tasks from a single cooperative
// goroutine: an explicit list of schedule entries polled by a short tick.
// Due tasks run synchronously and sequentially, so no two tasks ever overlap.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Task func(ctx context.Context)

type entry struct {
	name     string
	schedule cron.Schedule
	task     Task
	next     time.Time
}

type Scheduler struct {
	entries []*entry
	tick    time.Duration
	backoff time.Duration // pause after a recovered task panic
	log     *slog.Logger
	now     func() time.Time
}

func New(log *slog.Logger) *Scheduler {
	return &Scheduler{
		tick:    time.Second,
		backoff: 5 * time.Second,
		log:     log,
		now:     time.Now,
	}
}

// Every registers a fixed-interval task.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) {
	s.add(name, cron.Every(interval), task)
}

// At registers a task on a standard 5-field cron expression, e.g.
// "0 * * * *" for hourly on the hour or "0 1 * * *" for daily at 01:00.
func (s *Scheduler) At(name string, spec string, task Task) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return err
	}
	s.add(name, schedule, task)
	return nil
}

func (s *Scheduler) add(name string, schedule cron.Schedule, task Task) {
	s.entries = append(s.entries, &entry{
		name:     name,
		schedule: schedule,
		task:     task,
		next:     schedule.Next(s.now()),
	})
}

// Run polls for due entries until ctx is cancelled. A crash inside one
// tick's task must never take the process down: panics are recovered,
// logged, and followed by a short pause before the loop resumes.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started", "entries", len(s.entries))

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runDue(ctx, s.now())
		}
	}
}

// runDue executes every entry whose next-run instant has passed and
// recomputes its schedule afterwards.
func (s *Scheduler) runDue(ctx context.Context, now time.Time) {
	for _, e := range s.entries {
		if now.Before(e.next) {
			continue
		}
		s.runOne(ctx, e)
		e.next = e.schedule.Next(s.now())
	}
}

func (s *Scheduler) runOne(ctx context.Context, e *entry) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("task panicked", "task", e.name, "panic", r)
			s.sleep(ctx, s.backoff)
		}
	}()
	s.log.Debug("running task", "task", e.name)
	e.task(ctx)
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
