package classifier

import (
	"strings"

	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/model"
)

const lrm = "\u200e"

// Classifier labels records as system events or user messages. The label is
// computed on every call and never stored on the record.
type Classifier struct {
	rules *rules.Rules
}

// New creates a Classifier backed by the given rule set.
func New(r *rules.Rules) *Classifier {
	return &Classifier{rules: r}
}

// Classify returns SystemEvent when the message contains an administrative
// action phrase, UserMessage otherwise. Media placeholders are user messages
// even though the omission marker also reads as an administrative phrase.
//
// The phrase match is a plain case-insensitive search, so ordinary sentences
// such as "John added a photo" are labelled SystemEvent.
func (c *Classifier) Classify(rec model.Record) model.Label {
	if c.IsMedia(rec.Message) {
		return model.UserMessage
	}
	if c.rules.IsAdminAction(rec.Message) {
		return model.SystemEvent
	}
	return model.UserMessage
}

// IsMedia reports whether message is only an omitted-media marker, ignoring
// left-to-right marks and surrounding whitespace.
func (c *Classifier) IsMedia(message string) bool {
	cleaned := strings.TrimSpace(strings.ReplaceAll(message, lrm, ""))
	return c.rules.IsMediaPlaceholder(cleaned)
}
