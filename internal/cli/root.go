package cli

import (
	"errors"

	"github.com/alexanderramin/learnhub/internal/catalog"
	"github.com/alexanderramin/learnhub/internal/intelligence"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errLLMDisabled = errors.New("LLM is disabled: set LEARNHUB_LLM_ENABLED=true and LEARNHUB_LLM_API_KEY")
	errNoLogStore  = errors.New("conversation log store is not configured")
)

// App holds the services CLI commands run against. Chat is nil when no LLM
// is configured; Logs is nil when logging is off.
type App struct {
	Chat       intelligence.ChatService
	Dispatcher service.DispatchService
	Logs       repository.ConversationRepo
	Catalog    catalog.Source
	Logger     *zap.Logger

	HTTPAddr    string
	CORSOrigins string

	// IsInteractive reports whether stdout is a terminal. Nil means no, so
	// output defaults to JSON.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "learnhub" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "learnhub",
		Short:         "Course assistant: chat, recommendations, learning paths and comparisons",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String(flagCatalog, "", "Catalog snapshot (.json, .yaml, optionally .br; - for stdin)")
	root.PersistentFlags().Bool(flagJSON, false, "Print JSON even on a terminal")

	root.AddCommand(
		newChatCmd(app),
		newShellCmd(app),
		newParseCmd(app),
		newDispatchCmd(app),
		newRecommendCmd(app),
		newPathCmd(app),
		newCompareCmd(app),
		newTracksCmd(app),
		newLogsCmd(app),
		newServeCmd(app),
	)

	return root
}
