// Package linemode runs the chat widget over plain line-oriented streams, for pipes and scripts.
package linemode

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

// Surface prints finished messages as "you: ..." and "bot: ..." lines. The typing placeholder is
// never printed; run the controller with a zero reveal interval so each reply arrives in one piece.
type Surface struct {
	mu  sync.Mutex
	out io.Writer
	err error
}

var _ widget.Surface = (*Surface)(nil)

func NewSurface(out io.Writer) *Surface {
	return &Surface{out: out}
}

type element struct {
	surface *Surface
	kind    widget.Kind
}

func (s *Surface) Append(kind widget.Kind, content string) widget.Element {
	el := &element{surface: s, kind: kind}
	if kind == widget.KindUser {
		s.printLine("you", content)
	}
	return el
}

func (s *Surface) ScrollToBottom() {}

// Err returns the first write error, if any.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Surface) printLine(label string, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintf(s.out, "%s: %s\n", label, html.UnescapeString(content)); err != nil {
		s.err = errors.Wrap(err, "write line")
	}
}

func (e *element) SetContent(content string) {
	if e.kind == widget.KindBot {
		e.surface.printLine("bot", content)
	}
}

func (e *element) Remove() {}

// Input is an in-memory input field fed by Run.
type Input struct {
	mu    sync.Mutex
	value string
}

var _ widget.InputField = (*Input)(nil)

func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

func (i *Input) Clear() {
	i.SetValue("")
}

func (i *Input) Focus() {}

func (i *Input) SetValue(v string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = v
}

// Handler is the part of *widget.Controller Run drives.
type Handler interface {
	HandleKey(key string)
	Wait()
}

// Run types every line of r into input and presses Enter, then waits for all replies. Reading
// happens on its own goroutine so a cancelled ctx is noticed while r blocks. That goroutine stays
// parked in Read until r returns or is closed; callers passing os.Stdin leak it until exit.
func Run(ctx context.Context, h Handler, input *Input, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			readErr <- err
			close(lines)
		}()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			h.Wait()
			return ctx.Err()
		case line, ok := <-lines:
			if ctx.Err() != nil {
				h.Wait()
				return ctx.Err()
			}
			if !ok {
				h.Wait()
				if err := <-readErr; err != nil {
					return errors.Wrap(err, "read input")
				}
				return nil
			}
			input.SetValue(line)
			h.HandleKey("enter")
		}
	}
}
