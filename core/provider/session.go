package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// binding couples a configuration's stored credentials with the adapter's
// authentication outcome, giving the run a reusable session.
type binding struct {
	session         Session
	authenticatedAt time.Time
	attempts        int
}

// bind authenticates against the carrier with a bounded retry. Only network
// auth failures are retried (with exponential backoff); invalid credentials
// fail fast, since retrying them cannot help.
func bind(ctx context.Context, adapter Adapter, cfg APIConfig, settings Config, logger *zap.Logger) (*binding, error) {
	retries := settings.authRetries()
	backoff := settings.backoff()

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, settings.timeout())
		sess, err := adapter.Authenticate(callCtx, cfg)
		cancel()

		if err == nil {
			return &binding{
				session:         sess,
				authenticatedAt: time.Now(),
				attempts:        attempt,
			}, nil
		}
		lastErr = err

		var authErr *AuthError
		if !errors.As(err, &authErr) || authErr.Kind != AuthNetwork {
			return nil, err
		}
		if attempt == retries {
			break
		}

		logger.Warn("Authentication attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, lastErr
}
