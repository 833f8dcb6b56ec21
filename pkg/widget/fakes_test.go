package widget

import (
	"context"
	"sync"
)

type shownElement struct {
	Kind    Kind
	Content string
}

type fakeSurface struct {
	mu       sync.Mutex
	elements []*fakeElement
	scrolls  int
}

type fakeElement struct {
	surface *fakeSurface
	kind    Kind
	content string
	history []string
	removed int
}

func (s *fakeSurface) Append(kind Kind, content string) Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	el := &fakeElement{surface: s, kind: kind, content: content, history: []string{content}}
	s.elements = append(s.elements, el)
	return el
}

func (s *fakeSurface) ScrollToBottom() {
	s.mu.Lock()
	s.scrolls++
	s.mu.Unlock()
}

func (e *fakeElement) SetContent(content string) {
	e.surface.mu.Lock()
	defer e.surface.mu.Unlock()
	e.content = content
	e.history = append(e.history, content)
}

func (e *fakeElement) Remove() {
	e.surface.mu.Lock()
	defer e.surface.mu.Unlock()
	e.removed++
}

// visible lists the elements still attached, in append order.
func (s *fakeSurface) visible() []shownElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shownElement
	for _, el := range s.elements {
		if el.removed == 0 {
			out = append(out, shownElement{Kind: el.kind, Content: el.content})
		}
	}
	return out
}

func (s *fakeSurface) ofKind(kind Kind) []*fakeElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeElement
	for _, el := range s.elements {
		if el.kind == kind {
			out = append(out, el)
		}
	}
	return out
}

func (s *fakeSurface) countVisible(kind Kind) int {
	n := 0
	for _, el := range s.visible() {
		if el.Kind == kind {
			n++
		}
	}
	return n
}

func (s *fakeSurface) snapshot(el *fakeElement) (string, []string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return el.content, append([]string(nil), el.history...), el.removed
}

type fakeInput struct {
	mu      sync.Mutex
	value   string
	focused bool
	clears  int
}

func (i *fakeInput) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

func (i *fakeInput) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = ""
	i.clears++
}

func (i *fakeInput) Focus() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.focused = true
}

func (i *fakeInput) set(v string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = v
}

// recordingResponder remembers every message it was asked about.
type recordingResponder struct {
	mu       sync.Mutex
	messages []string
	reply    func(message string) (string, error)
}

func (r *recordingResponder) GetResponse(_ context.Context, message string) (string, error) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
	return r.reply(message)
}

func (r *recordingResponder) received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
