package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/spf13/pflag"
)

// promptStyleValue is a pflag.Value that only accepts known prompt styles.
type promptStyleValue domain.PromptStyle

var _ pflag.Value = (*promptStyleValue)(nil)

func newPromptStyleValue() *promptStyleValue {
	v := promptStyleValue(domain.PromptImproved)
	return &v
}

func (v *promptStyleValue) String() string { return string(*v) }

func (v *promptStyleValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidPromptStyles[s] {
		return fmt.Errorf("must be one of: improved, naive")
	}
	*v = promptStyleValue(s)
	return nil
}

func (v *promptStyleValue) Type() string { return "style" }

func (v *promptStyleValue) Style() domain.PromptStyle { return domain.PromptStyle(*v) }

// conversationStatusValue filters logs by status; empty means any.
type conversationStatusValue domain.ConversationStatus

var _ pflag.Value = (*conversationStatusValue)(nil)

func (v *conversationStatusValue) String() string { return string(*v) }

func (v *conversationStatusValue) Set(s string) error {
	switch st := domain.ConversationStatus(strings.ToLower(s)); st {
	case domain.StatusSuccess, domain.StatusError:
		*v = conversationStatusValue(st)
		return nil
	default:
		return fmt.Errorf("must be one of: success, error")
	}
}

func (v *conversationStatusValue) Type() string { return "status" }

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
