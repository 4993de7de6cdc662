// Package lifecycle runs deferred, best-effort cleanup of transient messages.
package lifecycle

import (
	"context"
	"sync"
	"time"
)

// DefaultTaskTimeout bounds a single deferred task once it fires
const DefaultTaskTimeout = 10 * time.Second

// Scheduler runs tasks after a fixed delay without blocking the caller
type Scheduler struct {
	delay       time.Duration
	taskTimeout time.Duration

	mu      sync.Mutex
	pending map[*Task]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// Task is a scheduled deferred task
type Task struct {
	s     *Scheduler
	fn    func(ctx context.Context)
	timer *time.Timer
}

// NewScheduler creates a scheduler that fires tasks after delay
func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay:       delay,
		taskTimeout: DefaultTaskTimeout,
		pending:     make(map[*Task]struct{}),
	}
}

// Delay returns the fixed delay applied to every task
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// After registers fn to run once the delay elapses and returns immediately.
// After Shutdown, fn runs right away in its own goroutine.
func (s *Scheduler) After(fn func(ctx context.Context)) *Task {
	t := &Task{s: s, fn: fn}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Shutdown may already be waiting on wg; late tasks are not tracked
	if s.closed {
		go s.execute(t)
		return t
	}

	s.wg.Add(1)
	s.pending[t] = struct{}{}
	t.timer = time.AfterFunc(s.delay, func() {
		if s.claim(t) {
			s.run(t)
		}
	})
	return t
}

// Cancel stops the task if it has not fired yet and reports whether it did so
func (t *Task) Cancel() bool {
	if !t.s.claim(t) {
		return false
	}
	t.timer.Stop()
	t.s.wg.Done()
	return true
}

// Pending returns the number of tasks waiting for their delay
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Shutdown fires every pending task immediately and waits for all running
// tasks to finish or for ctx to be done
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	tasks := make([]*Task, 0, len(s.pending))
	for t := range s.pending {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		if s.claim(t) {
			t.timer.Stop()
			go s.run(t)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// claim removes t from the pending set; only one caller wins
func (s *Scheduler) claim(t *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[t]; !ok {
		return false
	}
	delete(s.pending, t)
	return true
}

func (s *Scheduler) run(t *Task) {
	defer s.wg.Done()
	s.execute(t)
}

func (s *Scheduler) execute(t *Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.taskTimeout)
	defer cancel()

	t.fn(ctx)
}
