// Package ui renders the chat widget in a terminal with bubbletea.
package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Handler receives the user actions of the terminal widget; *widget.Controller implements it.
type Handler interface {
	HandleKey(key string)
	HandleSend()
	ActivateSuggestion(text string)
}

type transcriptChangedMsg struct{}

// Model is the bubbletea model of the terminal widget.
type Model struct {
	handler    Handler
	transcript *Transcript
	input      *Input

	title       string
	suggestions []string
	// focus is the index of the focused suggestion chip, -1 while the input has focus.
	focus int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	status   string

	copyToClipboard func(string) error
}

type ModelOption func(*Model)

func WithTitle(title string) ModelOption {
	return func(m *Model) {
		m.title = title
	}
}

func WithSuggestions(suggestions []string) ModelOption {
	return func(m *Model) {
		m.suggestions = append([]string(nil), suggestions...)
	}
}

func NewModel(handler Handler, transcript *Transcript, input *Input, options ...ModelOption) Model {
	m := Model{
		handler:         handler,
		transcript:      transcript,
		input:           input,
		title:           "Chat",
		focus:           -1,
		copyToClipboard: clipboard.WriteAll,
	}
	for _, opt := range options {
		opt(&m)
	}
	return m
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return transcriptChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.transcript.Changed()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = ev.Width
		m.height = ev.Height
		vpHeight := maxInt(1, ev.Height-m.chromeHeight())
		if !m.ready {
			m.viewport = viewport.New(ev.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = ev.Width
			m.viewport.Height = vpHeight
		}
		m.input.setWidth(maxInt(1, ev.Width-4))
		m.refresh(true)
		return m, nil

	case transcriptChangedMsg:
		m.refresh(m.transcript.TakeScroll())
		return m, waitForChange(m.transcript.Changed())

	case tea.KeyMsg:
		switch ev.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil
		case "enter":
			if m.focus >= 0 {
				text := m.suggestions[m.focus]
				m.setFocus(-1)
				m.handler.ActivateSuggestion(text)
				return m, nil
			}
			m.handler.HandleKey("enter")
			return m, nil
		case "ctrl+s":
			m.handler.HandleSend()
			return m, nil
		case "ctrl+y":
			m.copyLastReply()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.focus >= 0 {
			return m, nil
		}
		m.status = ""
		return m, m.input.update(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.input.update(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) refresh(scroll bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript.Render(m.viewport.Width))
	if scroll {
		m.viewport.GotoBottom()
	}
}

func (m *Model) cycleFocus(step int) {
	if len(m.suggestions) == 0 {
		return
	}
	// positions: -1 (input), 0..n-1 (chips)
	n := len(m.suggestions) + 1
	pos := (m.focus + 1 + step + n) % n
	m.setFocus(pos - 1)
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	if focus < 0 {
		m.input.Focus()
	} else {
		m.input.blur()
	}
}

func (m *Model) copyLastReply() {
	text := m.transcript.LastBotText()
	if text == "" {
		m.status = "nothing to copy yet"
		return
	}
	if err := m.copyToClipboard(text); err != nil {
		log.Warn().Err(err).Str("component", "ui").Msg("ui: clipboard write failed")
		m.status = "clipboard unavailable"
		return
	}
	m.status = "reply copied"
}

func (m Model) chromeHeight() int {
	h := 3 // title, input, help
	if len(m.suggestions) > 0 {
		h++
	}
	return h
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if len(m.suggestions) > 0 {
		b.WriteString(m.chipsView())
		b.WriteString("\n")
	}
	b.WriteString(m.input.view())
	b.WriteString("\n")

	help := "enter send · ctrl+s send · tab suggestions · pgup/pgdown scroll · ctrl+y copy reply · esc quit"
	line := helpStyle.Render(help)
	if m.status != "" {
		line = statusStyle.Render(m.status) + "  " + line
	}
	b.WriteString(lipgloss.NewStyle().MaxWidth(m.width).Render(line))
	return b.String()
}

func (m Model) chipsView() string {
	chips := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		if i == m.focus {
			chips = append(chips, focusedChipStyle.Render(s))
			continue
		}
		chips = append(chips, chipStyle.Render(s))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(row)
}

// Run drives m until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model, options ...tea.ProgramOption) error {
	options = append([]tea.ProgramOption{tea.WithContext(ctx)}, options...)
	p := tea.NewProgram(m, options...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
