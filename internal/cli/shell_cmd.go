package cli

import (
	"github.com/alexanderramin/learnhub/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	style := newPromptStyleValue()
	var email, name string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Chat == nil {
				return errLLMDisabled
			}
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}

			chosen := style.Style()
			if !cmd.Flags().Changed("prompt-type") && app.IsInteractive != nil && app.IsInteractive() {
				if chosen, err = choosePromptStyle(chosen); err != nil {
					return err
				}
			}

			m := newShellModel(commandContext(cmd), app.Chat, shellOptions{
				View:      view,
				Style:     chosen,
				UserEmail: email,
				UserName:  name,
				History:   loadInputHistory(defaultHistoryPath()),
			})
			_, err = tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	cmd.Flags().Var(style, "prompt-type", "Prompt style: improved or naive (asks when omitted on a terminal)")
	cmd.Flags().StringVar(&email, "email", "", "Learner email recorded with each conversation")
	cmd.Flags().StringVar(&name, "name", "", "Learner name recorded with each conversation")
	return cmd
}

// choosePromptStyle asks which system prompt to use.
func choosePromptStyle(current domain.PromptStyle) (domain.PromptStyle, error) {
	choice := string(current)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Prompt style").
			Options(
				huh.NewOption("Improved: full catalog JSON and action markers", string(domain.PromptImproved)),
				huh.NewOption("Naive: plain assistant with course titles only", string(domain.PromptNaive)),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return current, err
	}
	return domain.PromptStyle(choice), nil
}
