package widget

import (
	"time"

	"github.com/pkg/errors"
)

// DefaultRevealInterval is the delay between two revealed characters of a bot reply.
const DefaultRevealInterval = 15 * time.Millisecond

// Option configures optional behaviour of a Controller.
type Option func(*Controller) error

// WithRevealInterval sets the progressive reveal pace. Zero renders replies at once.
func WithRevealInterval(d time.Duration) Option {
	return func(c *Controller) error {
		if d < 0 {
			return errors.Errorf("reveal interval must not be negative, got %s", d)
		}
		c.revealInterval = d
		return nil
	}
}

// WithDiscardSuperseded drops replies to requests that were overtaken by a newer submission.
func WithDiscardSuperseded(discard bool) Option {
	return func(c *Controller) error {
		c.discardSuperseded = discard
		return nil
	}
}
