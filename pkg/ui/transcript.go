package ui

import (
	"html"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

// Transcript is the message container of the terminal widget. It is written by the widget controller
// and painted by the bubbletea model, which it wakes up through Changed.
type Transcript struct {
	mu      sync.Mutex
	entries []*entry
	scroll  bool
	changed chan struct{}
}

var _ widget.Surface = (*Transcript)(nil)

type entry struct {
	transcript *Transcript
	kind       widget.Kind
	content    string
}

func NewTranscript() *Transcript {
	return &Transcript{changed: make(chan struct{}, 1)}
}

func (t *Transcript) Append(kind widget.Kind, content string) widget.Element {
	e := &entry{transcript: t, kind: kind, content: content}
	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()
	t.notify()
	return e
}

func (t *Transcript) ScrollToBottom() {
	t.mu.Lock()
	t.scroll = true
	t.mu.Unlock()
	t.notify()
}

// Changed fires, coalesced, after every mutation.
func (t *Transcript) Changed() <-chan struct{} {
	return t.changed
}

// TakeScroll reports whether a scroll to the bottom was requested since the last call.
func (t *Transcript) TakeScroll() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.scroll
	t.scroll = false
	return s
}

func (t *Transcript) notify() {
	select {
	case t.changed <- struct{}{}:
	default:
	}
}

func (e *entry) SetContent(content string) {
	e.transcript.mu.Lock()
	e.content = content
	e.transcript.mu.Unlock()
	e.transcript.notify()
}

func (e *entry) Remove() {
	t := e.transcript
	t.mu.Lock()
	for i, cur := range t.entries {
		if cur == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	t.mu.Unlock()
	t.notify()
}

// Line is one attached element with its content unescaped for the terminal.
type Line struct {
	Kind widget.Kind
	Text string
}

func (t *Transcript) Lines() []Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]Line, 0, len(t.entries))
	for _, e := range t.entries {
		lines = append(lines, Line{Kind: e.kind, Text: html.UnescapeString(e.content)})
	}
	return lines
}

// LastBotText is the most recent bot reply, empty when there is none yet.
func (t *Transcript) LastBotText() string {
	lines := t.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Kind == widget.KindBot {
			return lines[i].Text
		}
	}
	return ""
}

// Render paints the transcript wrapped to width.
func (t *Transcript) Render(width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}
	var b strings.Builder
	for i, line := range t.Lines() {
		if i > 0 {
			b.WriteString("\n")
		}
		var rendered string
		switch line.Kind {
		case widget.KindUser:
			rendered = userLabelStyle.Render("You:") + " " + line.Text
		case widget.KindBot:
			rendered = botLabelStyle.Render("Bot:") + " " + line.Text
		case widget.KindTyping:
			rendered = typingStyle.Render(line.Text)
		default:
			rendered = line.Text
		}
		b.WriteString(wrap.Render(rendered))
	}
	return b.String()
}
