/*
Package bot contains the interaction controller: the state machine mapping
chat events to session transitions, engine calls, and rendered views.

PURPOSE:
  The controller decides WHICH text and WHICH logical controls to present;
  it never formats transport-specific markup. The chat transport (Telegram in
  production, a fake in tests) delivers events and renders views through the
  Transport interface defined here.

KEY CONCEPTS IN THIS FILE (transport.go):
  - Event: one inbound chat event (text message or button tap)
  - Keyboard/Button: logical selectable controls arranged in rows
  - Transport: the outbound rendering contract

SEE ALSO:
  - controller.go: Event dispatch
  - keyboards.go: Keyboard construction
  - transport/telegram: Production adapter
*/
package bot

import "context"

// =============================================================================
// INBOUND EVENTS
// =============================================================================

// EventType says how the event was produced.
type EventType string

const (
	// EventText is a plain text message (commands and reply-keyboard taps).
	EventText EventType = "text"
	// EventTap is an inline button tap carrying a callback payload.
	EventTap EventType = "tap"
)

// Event is one inbound chat event.
type Event struct {
	Type     EventType
	UserID   int64
	Username string

	// ChatID is where replies go. For the private chats this bot serves it
	// equals UserID, but the transport fills it in either way.
	ChatID int64

	// Text is the message body for EventText.
	Text string

	// Data is the callback payload for EventTap, and MessageID identifies
	// the message whose keyboard was tapped (the edit target).
	Data      string
	MessageID int

	// TapID is the transport's handle for completing a tap (ack or alert).
	TapID string
}

// =============================================================================
// OUTBOUND CONTROLS
// =============================================================================

// Button is one labeled, identifier-bearing selectable control.
type Button struct {
	Label string
	Data  string
}

// Keyboard is rows of inline buttons.
type Keyboard [][]Button

// =============================================================================
// TRANSPORT
// =============================================================================

// Transport renders views back to the chat. Implementations must be safe for
// concurrent use; the controller may be driven from multiple goroutines.
type Transport interface {
	// Send posts a new message, optionally with an inline keyboard.
	Send(ctx context.Context, chatID int64, text string, kb *Keyboard) error

	// Edit replaces the text and keyboard of an existing message. A nil
	// keyboard removes the controls.
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error

	// SendMenu posts a message with a persistent reply keyboard whose
	// buttons send their label back as a text message.
	SendMenu(ctx context.Context, chatID int64, text string, rows [][]string) error

	// Alert completes a tap with a non-blocking notification. The user's
	// current view stays open.
	Alert(ctx context.Context, tapID, text string) error

	// Ack completes a tap silently.
	Ack(ctx context.Context, tapID string) error
}
