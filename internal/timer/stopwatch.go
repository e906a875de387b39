// Package timer provides the monotonic stopwatch used for per-device and
// per-run elapsed time bookkeeping.
package timer

import "time"

// Stopwatch accumulates elapsed wall time across Start/Stop cycles.
// The zero value is a reset stopwatch and is ready to use.
type Stopwatch struct {
	startedAt time.Time
	elapsed   time.Duration
	running   bool
}

// New returns a reset stopwatch.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Reset clears accumulated time and stops the watch.
func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = false
}

// Start begins (or resumes) timing. Starting a running watch is a no-op.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.startedAt = time.Now()
	s.running = true
}

// Stop ends the current timing interval and folds it into the total.
// Stopping a stopped watch is a no-op.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.elapsed += time.Since(s.startedAt)
	s.running = false
}

// Elapsed reports the accumulated time, including the interval in
// progress if the watch is running.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.elapsed + time.Since(s.startedAt)
	}
	return s.elapsed
}

// ElapsedMs reports the accumulated time in milliseconds.
func (s *Stopwatch) ElapsedMs() float64 {
	return float64(s.Elapsed()) / float64(time.Millisecond)
}
