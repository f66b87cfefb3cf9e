package chatwrap

import "time"

// Kind tells user messages apart from group administration events.
type Kind string

const (
	KindUser   Kind = "user_message"
	KindSystem Kind = "system_event"
)

// Message is one parsed record of an export. Text carries continuation
// lines joined with "\n".
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Kind      Kind      `json:"kind"`
	InYear    bool      `json:"in_year"` // counted toward the configured year
}
