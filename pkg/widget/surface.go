package widget

import "context"

// Kind tells a surface how to present an element.
type Kind int

const (
	KindUser Kind = iota
	KindBot
	// KindTyping is the transient placeholder shown while a request is in flight.
	KindTyping
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindBot:
		return "bot"
	case KindTyping:
		return "typing"
	default:
		return "unknown"
	}
}

// Surface is the scrollable message container.
//
// Content handed to a surface is always escaped with EscapeForDisplay.
type Surface interface {
	Append(kind Kind, content string) Element
	ScrollToBottom()
}

// Element is one node appended to a Surface.
type Element interface {
	SetContent(content string)
	Remove()
}

// InputField is the text box the user types into.
type InputField interface {
	Value() string
	Clear()
	Focus()
}

// Responder fetches the reply for a user message.
type Responder interface {
	GetResponse(ctx context.Context, message string) (string, error)
}

type ResponderFunc func(ctx context.Context, message string) (string, error)

func (f ResponderFunc) GetResponse(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}
