package provider

import "time"

// Config holds engine-level settings for the synchronization engine.
type Config struct {
	// Workers bounds how many configurations a bulk run syncs concurrently.
	// An unbounded fan-out risks rate-limit storms against carrier APIs.
	Workers int `mapstructure:"workers" default:"4"`
	// TimeoutSeconds bounds every network call an adapter makes on behalf of
	// the engine.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AuthRetries is how many authentication attempts are made before a
	// network auth failure is treated as fatal.
	AuthRetries int `mapstructure:"auth_retries" default:"3"`

	// authBackoff is the initial retry backoff. Only tests override it.
	authBackoff time.Duration
}

// timeout returns the per-call timeout with a safe fallback.
func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// workers returns the bulk-run pool size with a safe fallback.
func (c Config) workers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// authRetries returns the bounded retry count with a safe fallback.
func (c Config) authRetries() int {
	if c.AuthRetries <= 0 {
		return 3
	}
	return c.AuthRetries
}

func (c Config) backoff() time.Duration {
	if c.authBackoff <= 0 {
		return time.Second
	}
	return c.authBackoff
}
