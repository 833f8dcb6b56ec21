package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// TypingText is shown in the placeholder while a request is in flight.
	TypingText = "Typing..."
	// ApologyText replaces the reply whenever a request fails, whatever the cause.
	ApologyText = "Sorry, I'm having trouble connecting to the server. Please try again later."
)

// Controller translates user actions into rendered messages and endpoint calls.
type Controller struct {
	surface   Surface
	input     InputField
	responder Responder

	revealInterval    time.Duration
	discardSuperseded bool

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	seq    uint64
	reveal *reveal

	// pending counts background requests and reveals; idle is signalled when it drops to zero.
	pending int
	idle    *sync.Cond
}

func NewController(surface Surface, input InputField, responder Responder, options ...Option) (*Controller, error) {
	if surface == nil {
		return nil, errors.New("surface is nil")
	}
	if input == nil {
		return nil, errors.New("input field is nil")
	}
	if responder == nil {
		return nil, errors.New("responder is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		surface:        surface,
		input:          input,
		responder:      responder,
		revealInterval: DefaultRevealInterval,
		ctx:            ctx,
		cancel:         cancel,
	}
	c.idle = sync.NewCond(&c.mu)
	for _, opt := range options {
		if err := opt(c); err != nil {
			cancel()
			return nil, errors.Wrap(err, "apply controller option")
		}
	}
	return c, nil
}

// Start binds the controller lifetime to ctx and focuses the input field.
// It must be called before the first submission.
func (c *Controller) Start(ctx context.Context) {
	if ctx == nil {
		panic("widget: Start requires non-nil ctx")
	}
	c.mu.Lock()
	c.cancel()
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.input.Focus()
}

// HandleSend is the send control handler.
func (c *Controller) HandleSend() {
	c.Submit(c.input.Value())
}

// HandleKey is the input field key handler; only Enter submits.
func (c *Controller) HandleKey(key string) {
	if key == "enter" {
		c.HandleSend()
	}
}

// ActivateSuggestion behaves exactly as typing text and submitting it.
func (c *Controller) ActivateSuggestion(text string) {
	c.Submit(text)
}

// Submit renders the trimmed text as a user message, clears the input and requests a reply in the
// background. Blank text is ignored and reported as false.
func (c *Controller) Submit(text string) bool {
	message := strings.TrimSpace(text)
	if message == "" {
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.surface.Append(KindUser, EscapeForDisplay(message))
	c.surface.ScrollToBottom()
	ctx := c.ctx
	c.pending++
	c.mu.Unlock()

	c.input.Clear()

	go func() {
		defer c.settle()
		c.RequestResponse(ctx, message)
	}()
	return true
}

// RequestResponse shows the typing placeholder, asks the responder for a reply and renders it,
// or the apology when anything goes wrong. It returns once the reply is rendered or revealing.
func (c *Controller) RequestResponse(ctx context.Context, text string) {
	c.mu.Lock()
	placeholder := c.surface.Append(KindTyping, EscapeForDisplay(TypingText))
	c.surface.ScrollToBottom()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	reply, err := c.responder.GetResponse(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	placeholder.Remove()

	switch {
	case c.closed || c.ctx.Err() != nil:
		log.Debug().Str("component", "widget").Uint64("seq", seq).Msg("widget: reply dropped after teardown")
	case c.discardSuperseded && seq != c.seq:
		log.Debug().Str("component", "widget").Uint64("seq", seq).Uint64("latest", c.seq).Msg("widget: superseded reply dropped")
	case err != nil:
		log.Error().Err(err).Str("component", "widget").Uint64("seq", seq).Msg("widget: request failed")
		c.renderBotMessageLocked(ApologyText)
	default:
		c.renderBotMessageLocked(reply)
	}
}

// RenderBotMessage appends a bot message and reveals text progressively.
func (c *Controller) RenderBotMessage(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.renderBotMessageLocked(text)
}

func (c *Controller) renderBotMessageLocked(text string) {
	if prev := c.reveal; prev != nil {
		prev.stop()
		prev.flush()
		c.reveal = nil
	}

	r := newReveal(c.surface.Append(KindBot, ""), text)
	if c.revealInterval <= 0 {
		r.flush()
		c.surface.ScrollToBottom()
		return
	}

	done := r.advance()
	c.surface.ScrollToBottom()
	if done {
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	r.cancel = cancel
	c.reveal = r
	interval := c.revealInterval
	c.pending++
	go func() {
		defer c.settle()
		c.runReveal(ctx, r, interval)
	}()
}

func (c *Controller) settle() {
	c.mu.Lock()
	c.pending--
	if c.pending == 0 {
		c.idle.Broadcast()
	}
	c.mu.Unlock()
}

// Wait blocks until every background request and reveal has finished. It may run concurrently
// with Submit and RenderBotMessage; work started meanwhile is waited for too.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending > 0 {
		c.idle.Wait()
	}
}

// Close tears the controller down: in-flight requests are cancelled and render nothing, the running
// reveal stops where it is.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.reveal != nil {
		c.reveal.stop()
		c.reveal = nil
	}
	c.cancel()
	c.mu.Unlock()

	c.Wait()
}
