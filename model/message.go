package model

import "time"

// MessageLevel decides how a message is styled and when it goes away
type MessageLevel string

const (
	MessageSuccess MessageLevel = "success"
	MessageInfo    MessageLevel = "info"
	MessageError   MessageLevel = "error"
)

// Message is a transient user-facing notification.
// A zero ExpiresAt means it stays until the message area is cleared.
type Message struct {
	Level     MessageLevel
	Text      string
	ExpiresAt time.Time
}
