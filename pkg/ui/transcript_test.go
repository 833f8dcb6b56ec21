package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

func TestTranscriptAppendSetRemove(t *testing.T) {
	tr := NewTranscript()

	tr.Append(widget.KindUser, "A &amp; B")
	typing := tr.Append(widget.KindTyping, "Typing...")
	bot := tr.Append(widget.KindBot, "")
	bot.SetContent("&lt;b&gt; it&#39;s")
	typing.Remove()
	typing.Remove()

	require.Equal(t, []Line{
		{Kind: widget.KindUser, Text: "A & B"},
		{Kind: widget.KindBot, Text: "<b> it's"},
	}, tr.Lines())
	require.Equal(t, "<b> it's", tr.LastBotText())
}

func TestTranscriptNotifiesAndTracksScroll(t *testing.T) {
	tr := NewTranscript()
	require.False(t, tr.TakeScroll())

	tr.Append(widget.KindUser, "hi")
	tr.ScrollToBottom()

	select {
	case <-tr.Changed():
	case <-time.After(time.Second):
		t.Fatal("expected change notification")
	}
	require.True(t, tr.TakeScroll())
	require.False(t, tr.TakeScroll())
}

func TestTranscriptRenderLabelsRoles(t *testing.T) {
	tr := NewTranscript()
	tr.Append(widget.KindUser, "hello")
	tr.Append(widget.KindTyping, "Typing...")

	out := tr.Render(80)
	require.Contains(t, out, "You:")
	require.Contains(t, out, "hello")
	require.Contains(t, out, "Typing...")
	require.NotContains(t, out, "Bot:")
	require.Equal(t, "", NewTranscript().LastBotText())
}
