package protocol

import "strings"

// DisplayText returns the reply without its ACTIONS section, trimmed. A
// dangling code fence left behind by a fenced section is dropped too.
func DisplayText(reply string) string {
	idx := strings.Index(reply, ActionsMarker)
	if idx < 0 {
		return strings.TrimSpace(reply)
	}
	text := strings.TrimSpace(reply[:idx])
	if nl := strings.LastIndexByte(text, '\n'); strings.HasPrefix(strings.TrimSpace(text[nl+1:]), "```") {
		text = strings.TrimSpace(text[:max(nl, 0)])
	}
	return text
}
