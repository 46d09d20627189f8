package cli

import (
	"time"

	"github.com/alexanderramin/learnhub/internal/cli/formatter"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/server"
	"github.com/spf13/cobra"
)

func newLogsCmd(app *App) *cobra.Command {
	var (
		limit  int
		email  string
		status conversationStatusValue
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent conversations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Logs == nil {
				return errNoLogStore
			}
			logs, err := app.Logs.List(commandContext(cmd), repository.ConversationFilter{
				Limit:     limit,
				UserEmail: email,
				Status:    domain.ConversationStatus(status),
			})
			if err != nil {
				return err
			}

			views := make([]server.LogView, 0, len(logs))
			for _, l := range logs {
				views = append(views, server.NewLogView(l))
			}
			return app.render(cmd, views, func() string {
				return formatter.FormatLogs(logs, time.Now())
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", repository.DefaultListLimit, "Maximum number of conversations")
	cmd.Flags().StringVar(&email, "email", "", "Only conversations from this learner")
	cmd.Flags().Var(&status, "status", "Only conversations with this status: success or error")
	return cmd
}
