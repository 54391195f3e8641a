package ledger

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultFastInterval = 500 * time.Millisecond
	DefaultFastWindow   = time.Minute
	DefaultSlowInterval = 10 * time.Second
	DefaultDeadline     = time.Hour
)

// PollPolicy is the two-tier confirmation schedule. Every threshold is measured from submission.
type PollPolicy struct {
	FastInterval time.Duration
	FastWindow   time.Duration
	SlowInterval time.Duration
	Deadline     time.Duration
}

func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		FastInterval: DefaultFastInterval,
		FastWindow:   DefaultFastWindow,
		SlowInterval: DefaultSlowInterval,
		Deadline:     DefaultDeadline,
	}
}

// Next returns how long to wait after a failed lookup at elapsed, or false once the deadline has passed.
func (that PollPolicy) Next(elapsed time.Duration) (time.Duration, bool) {
	switch {
	case elapsed < that.FastWindow:
		return that.FastInterval, true
	case elapsed < that.Deadline:
		return that.SlowInterval, true
	default:
		return 0, false
	}
}

func (that PollPolicy) withDefaults() PollPolicy {
	defaults := DefaultPollPolicy()
	if that.FastInterval <= 0 {
		that.FastInterval = defaults.FastInterval
	}
	if that.FastWindow <= 0 {
		that.FastWindow = defaults.FastWindow
	}
	if that.SlowInterval <= 0 {
		that.SlowInterval = defaults.SlowInterval
	}
	if that.Deadline <= 0 {
		that.Deadline = defaults.Deadline
	}

	return that
}

// pollBackOff adapts PollPolicy to backoff.BackOff, measuring elapsed time from submission.
type pollBackOff struct {
	policy    PollPolicy
	clock     Clock
	submitted time.Time
}

func (that *pollBackOff) NextBackOff() time.Duration {
	wait, ok := that.policy.Next(that.clock.Now().Sub(that.submitted))
	if !ok {
		return backoff.Stop
	}

	return wait
}

func (that *pollBackOff) Reset() {}

// clockTimer drives backoff retries from the injected clock.
type clockTimer struct {
	clock Clock
	c     <-chan time.Time
}

func (that *clockTimer) Start(d time.Duration) {
	that.c = that.clock.After(d)
}

func (that *clockTimer) Stop() {}

func (that *clockTimer) C() <-chan time.Time {
	return that.c
}
