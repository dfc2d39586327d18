// Package retry computes backoff delays for transient failures, used by the
// puzzle-input fetcher and the daemon's job machinery.
package retry

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/config"
)

// Policy describes how often and how long to wait between retries.
// Immutable after construction; copy freely.
type Policy struct {
	Mode       config.RetryBackoffMode
	Initial    time.Duration // delay before the first retry
	Max        time.Duration // upper bound for grown delays
	MaxRetries int           // retries after the initial attempt
}

// DefaultPolicy is linear growth from 1s, capped at 30s, two retries.
func DefaultPolicy() Policy {
	return Policy{
		Mode:       config.RetryBackoffLinear,
		Initial:    time.Second,
		Max:        30 * time.Second,
		MaxRetries: 2,
	}
}

// NewPolicy builds a policy from raw values. Zero or invalid fields keep the
// default, and Initial is clamped so it never exceeds Max.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if mode != "" && config.NormalizeRetryBackoff(string(mode)) == mode {
		p.Mode = mode
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	p.Initial = min(p.Initial, p.Max)
	return p
}

// FromFetchConfig builds a policy from the fetch section of the configuration.
func FromFetchConfig(fc config.FetchConfig) Policy {
	return NewPolicy(fc.RetryBackoff, fc.RetryInitialDuration(), fc.RetryMaxDuration(), fc.MaxRetries)
}

// Delay returns the wait before retry number retryCount (1-based). Attempt
// numbers at or below zero get no delay.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}

	var d time.Duration
	switch p.Mode {
	case config.RetryBackoffFixed:
		d = p.Initial
	case config.RetryBackoffExponential:
		d = p.Initial << (retryCount - 1)
	default:
		d = p.Initial * time.Duration(retryCount)
	}
	return min(d, p.Max)
}

// Validate rejects policies that could never schedule a retry sensibly.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max must be >0")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}
