package widget

import (
	"context"
	"time"
)

// reveal is the scheduled task growing one bot element character by character.
// All fields except cancel are guarded by Controller.mu.
type reveal struct {
	el      Element
	runes   []rune
	shown   int
	// painted is set once the element holds the full text; an empty reply is painted too.
	painted bool
	stopped bool
	cancel  context.CancelFunc
}

func newReveal(el Element, text string) *reveal {
	return &reveal{el: el, runes: []rune(text)}
}

// advance shows one more character and reports whether the whole text is visible.
func (r *reveal) advance() bool {
	if r.shown < len(r.runes) {
		r.shown++
		r.el.SetContent(EscapeForDisplay(string(r.runes[:r.shown])))
		r.painted = r.shown == len(r.runes)
		return r.painted
	}
	r.flush()
	return true
}

func (r *reveal) flush() {
	if r.painted {
		return
	}
	r.shown = len(r.runes)
	r.painted = true
	r.el.SetContent(EscapeForDisplay(string(r.runes)))
}

func (r *reveal) stop() {
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
	}
}

func (c *Controller) runReveal(ctx context.Context, r *reveal, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if r.stopped {
			c.mu.Unlock()
			return
		}
		done := r.advance()
		c.surface.ScrollToBottom()
		if done {
			r.stop()
			if c.reveal == r {
				c.reveal = nil
			}
		}
		c.mu.Unlock()

		if done {
			return
		}
	}
}
