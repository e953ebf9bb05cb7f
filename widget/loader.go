package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/sessionauth/logger"
	"github.com/viant/sessionauth/schema"
)

// DefaultPollInterval is used when AwaitReady gets a non-positive interval.
const DefaultPollInterval = 100 * time.Millisecond

// Loader waits for the widget capability and configures it.
type Loader struct {
	locator Locator
	logger  *logger.Logger
}

type Option func(l *Loader)

// WithLogger sets loader logger
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoader creates a loader looking up the capability through locator.
func NewLoader(locator Locator, options ...Option) *Loader {
	ret := &Loader{locator: locator, logger: logger.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// AwaitReady looks up the capability now and then every interval until it is present,
// ctx ends, or timeout (when positive) elapses. No lookup happens after it returns.
func (l *Loader) AwaitReady(ctx context.Context, interval, timeout time.Duration) (Capability, error) {
	if l.locator == nil {
		return nil, errors.New("widget: locator was nil")
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		deadlineTimer := time.NewTimer(timeout)
		defer deadlineTimer.Stop()
		deadline = deadlineTimer.C
	}
	polls := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		polls++
		if capability, ok := l.locator.Lookup(); ok {
			l.logger.Debug("widget ready", "polls", polls)
			return capability, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tick := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			tick.Stop()
			return nil, ctx.Err()
		case <-deadline:
			tick.Stop()
			l.logger.Warn("widget wait timed out", "polls", polls, "timeout", timeout)
			return nil, schema.ErrTimedOut
		case <-tick.C:
		}
	}
}

// Configure initializes the capability with clientID and callback, then disables
// automatic account selection.
func (l *Loader) Configure(capability Capability, clientID string, callback Callback) error {
	if capability == nil {
		return errors.New("widget: capability was nil")
	}
	if clientID == "" {
		return errors.New("widget: client id was empty")
	}
	if callback == nil {
		return errors.New("widget: callback was nil")
	}
	if err := capability.Initialize(&Config{ClientID: clientID, Callback: callback, AutoSelect: false}); err != nil {
		return fmt.Errorf("failed to initialize widget: %w", err)
	}
	if err := capability.DisableAutoSelect(); err != nil {
		return fmt.Errorf("failed to disable auto select: %w", err)
	}
	return nil
}
