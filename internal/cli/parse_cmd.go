package cli

import (
	"github.com/alexanderramin/learnhub/internal/cli/formatter"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/spf13/cobra"
)

type parseOutput struct {
	Reply   string                   `json:"reply"`
	Actions []protocol.ActionRequest `json:"actions"`
}

func newParseCmd(app *App) *cobra.Command {
	var noHeadings bool

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Extract action requests from a saved model reply without running them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := readReply(cmd, args)
			if err != nil {
				return err
			}
			out := parseOutput{
				Reply:   protocol.DisplayText(reply),
				Actions: protocol.ParseWithOptions(reply, protocol.ParseOptions{DisableHeadings: noHeadings}),
			}
			return app.render(cmd, out, func() string {
				return formatter.FormatActions(out.Actions)
			})
		},
	}

	cmd.Flags().BoolVar(&noHeadings, "no-headings", false, "Only detect explicit action markers")
	return cmd
}

func newDispatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch [file|-]",
		Short: "Parse a saved model reply and execute its actions against the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := readReply(cmd, args)
			if err != nil {
				return err
			}
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}
			res := app.Dispatcher.Dispatch(commandContext(cmd), reply, view)
			return app.render(cmd, res, func() string {
				return formatter.FormatDispatch(res)
			})
		},
	}
}
