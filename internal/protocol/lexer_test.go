package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskCodeFences_PreservesOffsets(t *testing.T) {
	in := "a\n```json\nACTIONS:\n```\nb"
	out := maskCodeFences(in)

	assert.Len(t, out, len(in))
	assert.NotContains(t, out, "```")
	assert.Equal(t, "ACTIONS:", out[10:18])
}

func TestLexTags(t *testing.T) {
	tags := lexTags("x [ACTION:A] [not a tag] [/action: b ] [ACTION:C\n]")

	require.Len(t, tags, 2)
	assert.Equal(t, tag{kind: tagOpen, name: "A", start: 2, end: 12}, tags[0])
	assert.Equal(t, tagClose, tags[1].kind)
	assert.Equal(t, "B", tags[1].name)
}

func TestLexBlocks_ResumesAfterBrokenOpen(t *testing.T) {
	section := "[ACTION:A][ACTION:B]body[/ACTION:B][/ACTION:A]"

	blocks := lexBlocks(section, 100)

	require.Len(t, blocks, 1)
	assert.Equal(t, ActionType("B"), blocks[0].typ)
	assert.Equal(t, "body", blocks[0].body)
	assert.Equal(t, 110, blocks[0].offset)
}

func TestLexFields(t *testing.T) {
	fields := lexFields("\n  COURSE_TITLE:  Go: The Hard Parts \n- career_goal: SRE\nnoise\n: empty key\n")

	assert.Equal(t, []field{
		{key: "COURSE_TITLE", value: "Go: The Hard Parts"},
		{key: "CAREER_GOAL", value: "SRE"},
	}, fields)
}
