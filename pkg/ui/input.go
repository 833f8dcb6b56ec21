package ui

import (
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

// Input is the text field of the terminal widget, shared between the bubbletea model and the
// widget controller.
type Input struct {
	mu    sync.Mutex
	model textinput.Model
}

var _ widget.InputField = (*Input)(nil)

func NewInput(placeholder string) *Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	return &Input{model: ti}
}

func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.model.Value()
}

func (i *Input) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.model.Reset()
}

func (i *Input) Focus() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.model.Focus()
}

func (i *Input) Focused() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.model.Focused()
}

func (i *Input) SetValue(v string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.model.SetValue(v)
}

func (i *Input) blur() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.model.Blur()
}

func (i *Input) setWidth(w int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.model.Width = w
}

func (i *Input) update(msg tea.Msg) tea.Cmd {
	i.mu.Lock()
	defer i.mu.Unlock()
	var cmd tea.Cmd
	i.model, cmd = i.model.Update(msg)
	return cmd
}

func (i *Input) view() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.model.View()
}
