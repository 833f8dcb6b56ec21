package widget

import "strings"

var displayEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// EscapeForDisplay replaces & < > ' " with their HTML entities and leaves everything else untouched.
func EscapeForDisplay(text string) string {
	return displayEscaper.Replace(text)
}
