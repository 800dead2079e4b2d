package store

import (
	"sync"
	"time"
)

// Scheduler collapses rapid writes into one: each Schedule call supersedes the
// previous pending task, and only the latest task runs once the quiet period
// elapses. This is how profile persistence absorbs per-keystroke edits.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	stopped bool
}

// DefaultDebounce is the quiet period for profile persistence.
const DefaultDebounce = 500 * time.Millisecond

// NewScheduler creates a scheduler with the given quiet period.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay}
}

// Schedule queues task to run after the quiet period, canceling any task
// scheduled earlier that has not fired yet.
func (s *Scheduler) Schedule(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = task
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		pending := s.pending
		s.pending = nil
		s.mu.Unlock()
		if pending != nil {
			pending()
		}
	})
}

// Flush runs the pending task immediately, if any. Used on shutdown so the
// last edit is not lost to the quiet period.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	if pending != nil {
		pending()
	}
}

// Stop cancels any pending task and rejects future scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
}
