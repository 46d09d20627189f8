package cli

import (
	"strings"

	"github.com/alexanderramin/learnhub/internal/cli/formatter"
	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	style := newPromptStyleValue()
	var email, name string

	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send one message to the assistant and run the actions it asks for",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Chat == nil {
				return errLLMDisabled
			}
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}

			req := contract.ChatRequest{
				UserInput:  strings.Join(args, " "),
				DBData:     view,
				PromptType: style.Style(),
				UserEmail:  email,
				UserName:   name,
			}

			stop := func() {}
			if !app.jsonOutput(cmd) {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp, err := app.Chat.Reply(commandContext(cmd), req)
			stop()
			if err != nil {
				return err
			}

			return app.render(cmd, resp, func() string {
				return formatter.FormatDispatch(resp)
			})
		},
	}

	cmd.Flags().Var(style, "prompt-type", "Prompt style: improved or naive")
	cmd.Flags().StringVar(&email, "email", "", "Learner email recorded with the conversation")
	cmd.Flags().StringVar(&name, "name", "", "Learner name recorded with the conversation")
	return cmd
}
