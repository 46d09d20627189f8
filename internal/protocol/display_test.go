package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"no section", "  Hello there!\n", "Hello there!"},
		{"section stripped", "Try these.\n\nACTIONS:\n[ACTION:RECOMMEND_COURSES][/ACTION:RECOMMEND_COURSES]", "Try these."},
		{"first marker wins", "Intro ACTIONS: one ACTIONS: two", "Intro"},
		{"dangling fence dropped", "Sure!\n```\nACTIONS:\n[ACTION:X][/ACTION:X]\n```", "Sure!"},
		{"only section", "ACTIONS:\n[ACTION:X][/ACTION:X]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayText(tt.reply))
		})
	}
}
