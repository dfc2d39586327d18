package config

import (
	"fmt"
	"time"
)

// Validate checks cross-field invariants after defaults have been applied.
func (c *Config) Validate() error {
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateBuild(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	return c.validateDaemon()
}

func (c *Config) validateDiscovery() error {
	if c.Discovery.MaxDay < 1 || c.Discovery.MaxDay > 99 {
		return fmt.Errorf("invalid discovery.max_day: %d (must be 1-99)", c.Discovery.MaxDay)
	}
	return nil
}

func (c *Config) validateBuild() error {
	if c.Build.Concurrency < 1 {
		return fmt.Errorf("invalid build.concurrency: %d (must be >= 1)", c.Build.Concurrency)
	}
	if _, err := time.ParseDuration(c.Build.Timeout); err != nil {
		return fmt.Errorf("invalid build.timeout: %s: %w", c.Build.Timeout, err)
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries cannot be negative: %d", c.Fetch.MaxRetries)
	}
	switch c.Fetch.RetryBackoff {
	case RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential:
	default:
		return fmt.Errorf("invalid fetch.retry_backoff: %s (allowed: fixed|linear|exponential)", c.Fetch.RetryBackoff)
	}
	initDur, err := time.ParseDuration(c.Fetch.RetryInitialDelay)
	if err != nil {
		return fmt.Errorf("invalid fetch.retry_initial_delay: %s: %w", c.Fetch.RetryInitialDelay, err)
	}
	maxDur, err := time.ParseDuration(c.Fetch.RetryMaxDelay)
	if err != nil {
		return fmt.Errorf("invalid fetch.retry_max_delay: %s: %w", c.Fetch.RetryMaxDelay, err)
	}
	if maxDur < initDur {
		return fmt.Errorf("fetch.retry_max_delay (%s) must be >= fetch.retry_initial_delay (%s)",
			c.Fetch.RetryMaxDelay, c.Fetch.RetryInitialDelay)
	}
	if _, err := time.ParseDuration(c.Fetch.Timeout); err != nil {
		return fmt.Errorf("invalid fetch.timeout: %s: %w", c.Fetch.Timeout, err)
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if c.Daemon.Workers < 1 {
		return fmt.Errorf("invalid daemon.workers: %d (must be >= 1)", c.Daemon.Workers)
	}
	if _, err := time.ParseDuration(c.Daemon.QuietWindow); err != nil {
		return fmt.Errorf("invalid daemon.quiet_window: %s: %w", c.Daemon.QuietWindow, err)
	}
	if c.Daemon.RebuildEvery != "" {
		if _, err := time.ParseDuration(c.Daemon.RebuildEvery); err != nil {
			return fmt.Errorf("invalid daemon.rebuild_every: %s: %w", c.Daemon.RebuildEvery, err)
		}
	}
	return nil
}

// Duration accessors. Defaults are applied before validation, so parse
// failures here mean Validate was skipped; fall back to the documented
// default rather than panic.

func (c *BuildConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, 2*time.Minute)
}

func (c *FetchConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, 30*time.Second)
}

func (c *FetchConfig) RetryInitialDuration() time.Duration {
	return parseDurationOr(c.RetryInitialDelay, time.Second)
}

func (c *FetchConfig) RetryMaxDuration() time.Duration {
	return parseDurationOr(c.RetryMaxDelay, 30*time.Second)
}

func (c *DaemonConfig) QuietWindowDuration() time.Duration {
	return parseDurationOr(c.QuietWindow, 2*time.Second)
}

func (c *DaemonConfig) RebuildEveryDuration() time.Duration {
	if c.RebuildEvery == "" {
		return 0
	}
	return parseDurationOr(c.RebuildEvery, 0)
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
