// Package scheduler runs the daily stale-reservation sweep. It replaces a
// cron-style annotation with a plain timer loop: compute the next wall-clock
// fire time, sleep until then, run, repeat.
package scheduler

import (
	"log"
	"time"

	"saltbay-backend/services"

	"github.com/jinzhu/now"
)

// SweepHour is the local wall-clock hour the sweep fires at (daily, 7 PM).
const SweepHour = 19

type Scheduler struct {
	Sweeper *services.SweeperService

	stop chan struct{}
	done chan struct{}
}

func New(sweeper *services.SweeperService) *Scheduler {
	return &Scheduler{
		Sweeper: sweeper,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// NextRun returns the next daily fire time strictly after t.
func NextRun(t time.Time) time.Time {
	fireAt := now.With(t).BeginningOfDay().Add(SweepHour * time.Hour)
	if !fireAt.After(t) {
		fireAt = fireAt.Add(24 * time.Hour)
	}
	return fireAt
}

// Start launches the timer loop in its own goroutine.
func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) run() {
	defer close(s.done)
	for {
		wait := time.Until(NextRun(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.RunOnce()
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

// RunOnce performs a single sweep and logs the outcome.
func (s *Scheduler) RunOnce() {
	log.Println("Starting daily cancellation for missing credit card details")
	cancelled, err := s.Sweeper.CancelMissingPaymentInfo()
	if err != nil {
		log.Printf("warning: reservation sweep failed: %v", err)
		return
	}
	if cancelled == 0 {
		log.Println("No reservations to cancel today.")
		return
	}
	log.Printf("Cancelled %d reservation(s) missing credit card details.", cancelled)
}

// Stop terminates the timer loop and waits for it to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}
