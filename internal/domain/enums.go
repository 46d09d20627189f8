package domain

import "strings"

// Level is the skill level inferred from a course title.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var (
	beginnerKeywords = []string{"beginner", "intro", "basic"}
	advancedKeywords = []string{"advanced", "master", "expert"}
)

// ClassifyLevel maps a title to a level by keyword containment. Beginner
// keywords are checked before advanced ones; anything else is intermediate.
func ClassifyLevel(title string) Level {
	lower := strings.ToLower(title)
	switch {
	case ContainsAny(lower, beginnerKeywords):
		return LevelBeginner
	case ContainsAny(lower, advancedKeywords):
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}

// ContainsAny reports whether s contains at least one of the substrings.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// PromptStyle selects the system prompt variant used for a chat request.
type PromptStyle string

const (
	PromptImproved PromptStyle = "improved"
	PromptNaive    PromptStyle = "naive"
)

// ValidPromptStyles is the canonical set of accepted prompt style strings.
var ValidPromptStyles = map[string]bool{
	"improved": true, "naive": true,
}

// ConversationStatus records whether a chat turn completed.
type ConversationStatus string

const (
	StatusSuccess ConversationStatus = "success"
	StatusError   ConversationStatus = "error"
)
