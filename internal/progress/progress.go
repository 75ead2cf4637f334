// Package progress simulates a completion percentage for a request that reports no
// progress of its own. The value is an estimate and is labelled as such in the UI.
package progress

import "time"

const (
	DefaultStep     = 10
	DefaultCeiling  = 90
	DefaultInterval = 500 * time.Millisecond
	Complete        = 100
)

// Simulator advances in fixed steps up to Ceiling until the request settles.
type Simulator struct {
	Step     int
	Ceiling  int
	Interval time.Duration

	value   float64
	settled bool
}

// New returns a simulator, replacing non-positive arguments with the defaults.
func New(step, ceiling int, interval time.Duration) *Simulator {
	if step <= 0 {
		step = DefaultStep
	}
	if ceiling <= 0 || ceiling >= Complete {
		ceiling = DefaultCeiling
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{Step: step, Ceiling: ceiling, Interval: interval}
}

// Advance moves forward one step, never past Ceiling. It reports whether another
// tick is worth scheduling.
func (s *Simulator) Advance() bool {
	if s.settled {
		return false
	}
	s.value += float64(s.Step)
	if s.value > float64(s.Ceiling) {
		s.value = float64(s.Ceiling)
	}
	return true
}

// Observe raises the estimate to the share of bytes already uploaded, scaled to Ceiling.
// It never moves the value backwards.
func (s *Simulator) Observe(sent, total int64) {
	if s.settled || total <= 0 || sent <= 0 {
		return
	}
	if sent > total {
		sent = total
	}
	floor := float64(sent) / float64(total) * float64(s.Ceiling)
	if floor > s.value {
		s.value = floor
	}
}

// Settle jumps to 100 and freezes.
func (s *Simulator) Settle() {
	s.value = Complete
	s.settled = true
}

func (s *Simulator) Reset() {
	s.value = 0
	s.settled = false
}

func (s *Simulator) Settled() bool {
	return s.settled
}

// Percent returns the current value rounded down to a whole percent.
func (s *Simulator) Percent() int {
	return int(s.value)
}

// Fraction returns the current value in [0, 1].
func (s *Simulator) Fraction() float64 {
	return s.value / Complete
}
