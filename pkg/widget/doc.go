// Package widget implements the chat widget controller.
//
// A Controller wires user actions (send control, Enter key, suggestion chips) to a single
// request/response round-trip and renders both sides of the conversation onto a Surface.
//
// Ownership model:
//   - Applications own the Surface and the InputField (a terminal UI, a line writer, a test fake).
//   - The Responder is injected so the endpoint can be swapped for a stub in tests.
//   - The Controller serializes every Surface and Element call; surfaces only need to guard
//     against their own readers.
package widget
