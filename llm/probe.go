package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// Pinger is anything that can check the model endpoint is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeSettings bounds the startup probe
type ProbeSettings struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime of zero retries until ctx is cancelled
	MaxElapsedTime time.Duration
}

// DefaultProbeSettings waits up to two minutes for a model server to come up
var DefaultProbeSettings = ProbeSettings{
	InitialInterval: 1 * time.Second,
	MaxInterval:     10 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
}

// WaitForModel pings the endpoint with exponential backoff until it answers,
// the elapsed time runs out or ctx is done.
func WaitForModel(ctx context.Context, p Pinger, settings ProbeSettings, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = settings.InitialInterval
	bo.MaxInterval = settings.MaxInterval
	bo.MaxElapsedTime = settings.MaxElapsedTime

	return backoff.RetryNotify(func() error {
		return p.Ping(ctx)
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		logger.Warn("Retrying connection to model endpoint",
			zap.Error(err),
			zap.Duration("next", next))
	})
}
