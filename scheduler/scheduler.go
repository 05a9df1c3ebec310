// Package scheduler drives the engine's time-triggered sweeps. It only
// ticks; all idempotency lives in the engine's daily watermarks, so a missed
// or duplicated tick never corrupts state.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"upkeep/services"
)

// LogEvent captures information about a scheduler log line.
type LogEvent struct {
	Message string
	Err     error
}

type Scheduler struct {
	engine   *services.Engine
	interval time.Duration

	// InfoLog and ErrorLog default to stdout/stderr if left nil.
	InfoLog  func(ev LogEvent)
	ErrorLog func(ev LogEvent)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(engine *services.Engine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		engine:   engine,
		interval: interval,
	}
}

// Start launches the tick loop and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logInfo(LogEvent{Message: fmt.Sprintf("scheduler started, ticking every %s", s.interval)})

		for {
			select {
			case <-runCtx.Done():
				s.logInfo(LogEvent{Message: "scheduler context canceled, stopping"})
				return
			case <-ticker.C:
				s.runOnce(time.Now())
			}
		}
	}()
}

// runOnce executes both sweeps for one tick. Each sweep decides for itself
// whether its time-of-day and watermark allow it to act.
func (s *Scheduler) runOnce(now time.Time) {
	dispatch, err := s.engine.RunDailyDispatch(now)
	if err != nil {
		s.logError(LogEvent{Message: "daily dispatch failed, will retry next tick", Err: err})
	} else if dispatch.RanToday {
		s.logInfo(LogEvent{Message: fmt.Sprintf(
			"daily dispatch for %s: %d tasks sent to %d employees",
			dispatch.Date, dispatch.Tasks, dispatch.Employees)})
	}

	closeRes, err := s.engine.RunAutoClose(now)
	if err != nil {
		s.logError(LogEvent{Message: "auto-close sweep failed, will retry next tick", Err: err})
	} else if closeRes.RanToday {
		s.logInfo(LogEvent{Message: fmt.Sprintf(
			"auto-close for %s: %d tasks closed", closeRes.Date, closeRes.Changed)})
	}
}

// Stop cancels the loop and waits up to timeout for the current tick.
func (s *Scheduler) Stop(timeout time.Duration) {
	if s.cancel == nil {
		return
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logInfo(LogEvent{Message: "scheduler stopped"})
	case <-time.After(timeout):
		s.logError(LogEvent{Message: "scheduler stop timed out"})
	}
}

func (s *Scheduler) logInfo(ev LogEvent) {
	if s.InfoLog != nil {
		s.InfoLog(ev)
		return
	}
	msg := fmt.Sprintf("[scheduler:INFO] %s", ev.Message)
	if ev.Err != nil {
		msg += fmt.Sprintf(" | error: %v", ev.Err)
	}
	_, _ = fmt.Fprintln(os.Stdout, msg)
}

func (s *Scheduler) logError(ev LogEvent) {
	if s.ErrorLog != nil {
		s.ErrorLog(ev)
		return
	}
	msg := fmt.Sprintf("[scheduler:ERROR] %s", ev.Message)
	if ev.Err != nil {
		msg += fmt.Sprintf(" | error: %v", ev.Err)
	}
	_, _ = fmt.Fprintln(os.Stderr, msg)
}
