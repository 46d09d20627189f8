package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/alexanderramin/learnhub/internal/teatest"
	"github.com/alexanderramin/learnhub/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShellDriver(t *testing.T, chat *fakeChat, opts shellOptions) *teatest.Driver {
	t.Helper()
	if opts.View.Courses == nil {
		opts.View = domain.CatalogView{Courses: testutil.SampleCatalog()}
	}
	d := teatest.New(t, newShellModel(context.Background(), chat, opts), teatest.WithSize(100, 30))
	d.DrainInit()
	return d
}

func shellState(t *testing.T, d *teatest.Driver) shellModel {
	t.Helper()
	m, ok := d.Model.(shellModel)
	require.True(t, ok)
	return m
}

func okChat(reply string) *fakeChat {
	return &fakeChat{resp: &contract.ChatResponse{Reply: reply, Actions: []protocol.ActionRequest{}}}
}

func TestShell_SendsMessageAndPrintsReply(t *testing.T) {
	chat := okChat("Docker Fundamentals is a good start.")
	d := newShellDriver(t, chat, shellOptions{UserEmail: "learner@example.com"})

	d.Submit("what should I learn next?")

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	assert.Equal(t, "what should I learn next?", req.UserInput)
	assert.Equal(t, domain.PromptImproved, req.PromptType)
	assert.Equal(t, "learner@example.com", req.UserEmail)
	assert.Empty(t, req.Context)
	assert.Len(t, req.DBData.Courses, 5)

	m := shellState(t, d)
	assert.False(t, m.pending)
	assert.Contains(t, strings.Join(m.transcript, "\n"), "Docker Fundamentals is a good start.")
	assert.Len(t, m.turns, 2)
}

func TestShell_CarriesConversationContext(t *testing.T) {
	chat := okChat("Sure.")
	d := newShellDriver(t, chat, shellOptions{})

	d.Submit("I like python")
	d.Submit("what next?")

	require.Len(t, chat.requests, 2)
	ctx := chat.requests[1].Context
	require.Len(t, ctx, 2)
	assert.Equal(t, "user", ctx[0].Role)
	assert.Equal(t, "I like python", ctx[0].Message())
	assert.Equal(t, "assistant", ctx[1].Role)
	assert.Equal(t, "Sure.", ctx[1].Message())
}

func TestShell_ContextIsBounded(t *testing.T) {
	chat := okChat("ok")
	d := newShellDriver(t, chat, shellOptions{})

	for i := 0; i < maxContextTurns; i++ {
		d.Submit("message")
	}
	assert.Len(t, shellState(t, d).turns, maxContextTurns)
}

func TestShell_StyleCommand(t *testing.T) {
	chat := okChat("ok")
	d := newShellDriver(t, chat, shellOptions{})

	d.Submit("/style naive")
	assert.Equal(t, domain.PromptNaive, shellState(t, d).opts.Style)
	assert.Contains(t, d.View(), "naive")

	d.Submit("hello")
	require.Len(t, chat.requests, 1)
	assert.Equal(t, domain.PromptNaive, chat.requests[0].PromptType)

	d.Submit("/style shouty")
	m := shellState(t, d)
	assert.Equal(t, domain.PromptNaive, m.opts.Style)
	assert.Contains(t, m.transcript[len(m.transcript)-1], "usage: /style")
}

func TestShell_ClearForgetsContext(t *testing.T) {
	chat := okChat("ok")
	d := newShellDriver(t, chat, shellOptions{})

	d.Submit("first")
	d.Submit("/clear")
	d.Submit("second")

	require.Len(t, chat.requests, 2)
	assert.Empty(t, chat.requests[1].Context)
}

func TestShell_ErrorKeepsContextUnchanged(t *testing.T) {
	chat := &fakeChat{err: errors.New("model unavailable")}
	d := newShellDriver(t, chat, shellOptions{})

	d.Submit("hello")

	m := shellState(t, d)
	assert.False(t, m.pending)
	assert.Empty(t, m.turns)
	assert.Contains(t, m.transcript[len(m.transcript)-1], "Error: model unavailable")
}

func TestShell_UnknownCommand(t *testing.T) {
	chat := okChat("ok")
	d := newShellDriver(t, chat, shellOptions{})

	d.Submit("/dance")

	m := shellState(t, d)
	assert.Empty(t, chat.requests)
	assert.Contains(t, m.transcript[len(m.transcript)-1], "unknown command /dance")
}

func TestShell_HistoryRecall(t *testing.T) {
	chat := okChat("ok")
	hist := loadInputHistory(filepath.Join(t.TempDir(), "shell_history"))
	d := newShellDriver(t, chat, shellOptions{History: hist})

	d.Submit("first question")
	d.Submit("/help")

	d.Press(tea.KeyUp)
	assert.Equal(t, "/help", shellState(t, d).input.Value())
	d.Press(tea.KeyUp)
	assert.Equal(t, "first question", shellState(t, d).input.Value())
	d.Press(tea.KeyDown)
	assert.Equal(t, "/help", shellState(t, d).input.Value())
	d.Press(tea.KeyDown)
	assert.Equal(t, "", shellState(t, d).input.Value())
}

func TestShell_QuitCommands(t *testing.T) {
	for _, input := range []string{"/quit", "/exit"} {
		t.Run(input, func(t *testing.T) {
			d := newShellDriver(t, okChat("ok"), shellOptions{})
			d.Submit(input)
			assert.True(t, d.Quitting)
			assert.Contains(t, d.View(), "Goodbye.")
		})
	}
}

func TestShell_CtrlCQuits(t *testing.T) {
	d := newShellDriver(t, okChat("ok"), shellOptions{})
	d.Press(tea.KeyCtrlC)
	assert.True(t, d.Quitting)
	assert.Error(t, shellState(t, d).ctx.Err())
}
