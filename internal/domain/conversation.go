package domain

import (
	"encoding/json"
	"time"
)

// ConversationLog is the persisted record of one chat turn. The core treats
// it as opaque output; only the log store and the logs command read it back.
type ConversationLog struct {
	ID            string
	Timestamp     time.Time
	UserEmail     string
	UserName      string
	UserPrompt    string
	PromptStyle   PromptStyle
	Summary       CatalogSummary
	ModelResponse string
	Actions       []ConversationAction
	Status        ConversationStatus
	Error         string
}

// ActionCount returns the number of recorded actions.
func (l ConversationLog) ActionCount() int {
	return len(l.Actions)
}

// ConversationAction is one finalized agent action stored with its log.
type ConversationAction struct {
	Seq      int
	Type     string
	Executed bool
	Payload  json.RawMessage
}
