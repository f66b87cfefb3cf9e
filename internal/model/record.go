package model

import "time"

// Record is one parsed chat message. Immutable once the parser emits it.
type Record struct {
	Timestamp time.Time // local to the export, no zone
	Sender    string    // trimmed display name
	Message   string    // body with continuation lines joined by "\n"
}

// Label is the derived classification of a record.
type Label int

const (
	UserMessage Label = iota
	SystemEvent
)

func (l Label) String() string {
	switch l {
	case SystemEvent:
		return "system_event"
	default:
		return "user_message"
	}
}
