package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

type stubHandler struct {
	keys        []string
	sends       int
	suggestions []string
}

func (s *stubHandler) HandleKey(key string)           { s.keys = append(s.keys, key) }
func (s *stubHandler) HandleSend()                    { s.sends++ }
func (s *stubHandler) ActivateSuggestion(text string) { s.suggestions = append(s.suggestions, text) }

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(m Model, key tea.KeyMsg) Model {
	next, _ := m.Update(key)
	return next.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModelEnterAndSendKeysReachHandler(t *testing.T) {
	h := &stubHandler{}
	m := sized(t, NewModel(h, NewTranscript(), NewInput("")))

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, []string{"enter"}, h.keys)
	require.Equal(t, 1, h.sends)
	require.Contains(t, m.View(), "Chat")
}

func TestModelTabFocusesSuggestionChips(t *testing.T) {
	h := &stubHandler{}
	input := NewInput("")
	input.Focus()
	m := sized(t, NewModel(h, NewTranscript(), input, WithSuggestions([]string{"What is X?", "Who are you?"})))

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.focus)
	require.False(t, input.Focused())

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.focus)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, -1, m.focus)
	require.True(t, input.Focused())

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 1, m.focus)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"Who are you?"}, h.suggestions)
	require.Empty(t, h.keys)
	require.Equal(t, -1, m.focus)
	require.True(t, input.Focused())
}

func TestModelTabWithoutSuggestionsKeepsInputFocus(t *testing.T) {
	m := sized(t, NewModel(&stubHandler{}, NewTranscript(), NewInput("")))
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, -1, m.focus)
}

func TestModelCopiesLastReply(t *testing.T) {
	tr := NewTranscript()
	m := sized(t, NewModel(&stubHandler{}, tr, NewInput("")))
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "nothing to copy yet", m.status)

	tr.Append(widget.KindBot, "it&#39;s fine")
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "it's fine", copied)
	require.Equal(t, "reply copied", m.status)

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "clipboard unavailable", m.status)
}

func TestModelDrivesController(t *testing.T) {
	tr := NewTranscript()
	input := NewInput("Type your message...")
	responder := widget.ResponderFunc(func(_ context.Context, message string) (string, error) {
		return "re: " + message, nil
	})
	c, err := widget.NewController(tr, input, responder, widget.WithRevealInterval(0))
	require.NoError(t, err)
	c.Start(context.Background())
	defer c.Close()

	m := sized(t, NewModel(c, tr, input))
	m = typeText(m, "hi <there>")
	require.Equal(t, "hi <there>", input.Value())

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	c.Wait()

	require.Equal(t, "", input.Value())
	require.Equal(t, []Line{
		{Kind: widget.KindUser, Text: "hi <there>"},
		{Kind: widget.KindBot, Text: "re: hi <there>"},
	}, tr.Lines())

	next, _ := m.Update(transcriptChangedMsg{})
	require.Contains(t, next.(Model).View(), "re: hi <there>")
}
