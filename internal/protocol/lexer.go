package protocol

import (
	"strings"
)

// ActionsMarker opens the machine-readable section of a reply.
const ActionsMarker = "ACTIONS:"

const (
	openPrefix  = "ACTION:"
	closePrefix = "/ACTION:"
)

type tagKind int

const (
	tagOpen tagKind = iota
	tagClose
)

// tag is one [ACTION:X] or [/ACTION:X] token. start and end are byte offsets
// of the opening '[' and one past the closing ']'.
type tag struct {
	kind  tagKind
	name  string
	start int
	end   int
}

// block is a matched open/close pair with the text between them.
type block struct {
	typ    ActionType
	body   string
	offset int
}

type field struct {
	key   string
	value string
}

// maskCodeFences blanks out markdown fence lines while keeping every byte
// offset intact, so a fenced ACTIONS section lexes like a bare one.
func maskCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			body := strings.TrimSuffix(line, "\n")
			b.WriteString(strings.Repeat(" ", len(body)))
			if len(body) < len(line) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// lexTags finds every well-formed action tag. A '[' that does not begin a
// tag, or a tag name that runs into a newline or another '[', is skipped.
func lexTags(s string) []tag {
	var tags []tag
	i := 0
	for i < len(s) {
		j := strings.IndexByte(s[i:], '[')
		if j < 0 {
			break
		}
		start := i + j
		rest := s[start+1:]

		var kind tagKind
		var skip int
		switch {
		case hasPrefixFold(rest, closePrefix):
			kind, skip = tagClose, len(closePrefix)
		case hasPrefixFold(rest, openPrefix):
			kind, skip = tagOpen, len(openPrefix)
		default:
			i = start + 1
			continue
		}

		nameStart := start + 1 + skip
		k := strings.IndexAny(s[nameStart:], "]\n[")
		if k < 0 || s[nameStart+k] != ']' {
			i = start + 1
			continue
		}
		end := nameStart + k + 1
		tags = append(tags, tag{
			kind:  kind,
			name:  strings.ToUpper(strings.TrimSpace(s[nameStart : nameStart+k])),
			start: start,
			end:   end,
		})
		i = end
	}
	return tags
}

// lexBlocks pairs each open tag with an immediately following close tag of
// the same name. Any other sequence discards the open tag and resumes at the
// next token, so one broken block never swallows its neighbours.
func lexBlocks(section string, base int) []block {
	tags := lexTags(section)
	var blocks []block
	for i := 0; i < len(tags); i++ {
		open := tags[i]
		if open.kind != tagOpen || i+1 >= len(tags) {
			continue
		}
		next := tags[i+1]
		if next.kind != tagClose || next.name != open.name {
			continue
		}
		blocks = append(blocks, block{
			typ:    ActionType(open.name),
			body:   section[open.end:next.start],
			offset: base + open.start,
		})
		i++
	}
	return blocks
}

// lexFields reads KEY: value lines from a block body in order.
func lexFields(body string) []field {
	var fields []field
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*"))
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			continue
		}
		fields = append(fields, field{
			key:   strings.ToUpper(strings.TrimSpace(line[:idx])),
			value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return fields
}

func firstValue(fields []field, key string) string {
	for _, f := range fields {
		if f.key == key && f.value != "" {
			return f.value
		}
	}
	return ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
