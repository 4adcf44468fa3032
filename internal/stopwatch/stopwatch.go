// Package stopwatch times the stages of a training or scoring run for
// logging.
package stopwatch

import "time"

// StopWatch measures elapsed wall-clock time across a Start/Stop pair.
type StopWatch struct {
	start   time.Time
	elapsed time.Duration
}

// Start records the current time as the measurement's beginning.
func (s *StopWatch) Start() { s.start = time.Now() }

// Stop records elapsed time since Start and returns it.
func (s *StopWatch) Stop() time.Duration {
	s.elapsed = time.Since(s.start)
	return s.elapsed
}

// Elapsed returns the duration recorded by the most recent Stop.
func (s *StopWatch) Elapsed() time.Duration { return s.elapsed }
