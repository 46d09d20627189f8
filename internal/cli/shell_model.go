package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/learnhub/internal/cli/formatter"
	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/intelligence"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxContextTurns bounds how much prior conversation is sent with each
// message.
const maxContextTurns = 20

const shellHelp = `Type a message to chat with the assistant.
  /style improved|naive   switch prompt style
  /clear                  forget the conversation so far
  /help                   show this help
  /quit, /exit            leave the shell`

// replyMsg carries a finished chat round trip back into Update.
type replyMsg struct {
	input string
	resp  *contract.ChatResponse
	err   error
}

type shellOptions struct {
	View      domain.CatalogView
	Style     domain.PromptStyle
	UserEmail string
	UserName  string
	History   *inputHistory
}

// shellModel is the bubbletea model for the interactive chat shell.
type shellModel struct {
	input   textinput.Model
	spinner spinner.Model
	width   int

	ctx    context.Context
	cancel context.CancelFunc
	chat   intelligence.ChatService
	opts   shellOptions

	// turns is the conversation context sent with each message.
	turns []contract.ChatTurn
	// transcript mirrors everything printed above the prompt.
	transcript []string

	history    *inputHistory
	historyIdx int

	pending  bool
	quitting bool
}

func newShellModel(ctx context.Context, chat intelligence.ChatService, opts shellOptions) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	if opts.Style == "" {
		opts.Style = domain.PromptImproved
	}
	hist := opts.History
	if hist == nil {
		hist = loadInputHistory("")
	}

	ctx, cancel := context.WithCancel(ctx)
	return shellModel{
		input:      ti,
		spinner:    sp,
		ctx:        ctx,
		cancel:     cancel,
		chat:       chat,
		opts:       opts,
		history:    hist,
		historyIdx: hist.Len(),
	}
}

func (m shellModel) Init() tea.Cmd {
	welcome := fmt.Sprintf("%s  %s\n%s",
		formatter.StylePurple.Render("learnhub"),
		formatter.Dim(fmt.Sprintf("%d courses loaded, %s prompt", len(m.opts.View.Courses), m.opts.Style)),
		formatter.Dim("Type /help for commands."))
	return tea.Batch(textinput.Blink, tea.Println(welcome))
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.promptPrefix()) - 1
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m.quit()
		}
		if m.pending {
			return m, nil
		}
		return m.updatePrompt(msg)

	case replyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.pending {
		return m.spinner.View() + " " + formatter.Dim("Thinking...")
	}
	return m.promptPrefix() + m.input.View()
}

func (m *shellModel) promptPrefix() string {
	return formatter.StylePurple.Render("learnhub") + formatter.Dim("("+string(m.opts.Style)+")") + " " + formatter.Dim("❯") + " "
}

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if input == "" {
			return m, nil
		}
		m.history.Add(input)
		m.historyIdx = m.history.Len()

		if strings.HasPrefix(input, "/") {
			return m.runCommand(input)
		}
		return m.send(input)

	case tea.KeyUp:
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.history.At(m.historyIdx))
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIdx < m.history.Len()-1 {
			m.historyIdx++
			m.input.SetValue(m.history.At(m.historyIdx))
			m.input.CursorEnd()
		} else {
			m.historyIdx = m.history.Len()
			m.input.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) runCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit":
		return m.quit()
	case "/help":
		return m.print(shellHelp)
	case "/clear":
		m.turns = nil
		return m.print(formatter.Dim("Conversation cleared."))
	case "/style":
		if len(fields) != 2 || !domain.ValidPromptStyles[strings.ToLower(fields[1])] {
			return m.print(formatter.StyleRed.Render("usage: /style improved|naive"))
		}
		m.opts.Style = domain.PromptStyle(strings.ToLower(fields[1]))
		return m.print(formatter.Dim("Prompt style set to " + string(m.opts.Style) + "."))
	default:
		return m.print(formatter.StyleRed.Render("unknown command " + fields[0] + ", try /help"))
	}
}

func (m shellModel) send(input string) (tea.Model, tea.Cmd) {
	m.pending = true
	echo := formatter.Bold("you") + formatter.Dim(" ❯ ") + input
	m.transcript = append(m.transcript, echo)

	req := contract.ChatRequest{
		UserInput:  input,
		DBData:     m.opts.View,
		Context:    append([]contract.ChatTurn(nil), m.turns...),
		PromptType: m.opts.Style,
		UserEmail:  m.opts.UserEmail,
		UserName:   m.opts.UserName,
	}
	chat, ctx := m.chat, m.ctx
	reply := func() tea.Msg {
		resp, err := chat.Reply(ctx, req)
		return replyMsg{input: input, resp: resp, err: err}
	}
	return m, tea.Batch(tea.Println(echo), reply, m.spinner.Tick)
}

func (m shellModel) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	if msg.err != nil {
		return m.print(formatter.StyleRed.Render("Error: " + msg.err.Error()))
	}

	m.turns = append(m.turns,
		contract.ChatTurn{Role: "user", Text: msg.input},
		contract.ChatTurn{Role: "assistant", Text: msg.resp.Reply},
	)
	if len(m.turns) > maxContextTurns {
		m.turns = m.turns[len(m.turns)-maxContextTurns:]
	}
	return m.print(strings.TrimRight(formatter.FormatDispatch(msg.resp), "\n"))
}

func (m shellModel) print(text string) (tea.Model, tea.Cmd) {
	m.transcript = append(m.transcript, text)
	return m, tea.Println(text)
}

func (m shellModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}
