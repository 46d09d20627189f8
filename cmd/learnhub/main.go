package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/learnhub/internal/catalog"
	"github.com/alexanderramin/learnhub/internal/cli"
	"github.com/alexanderramin/learnhub/internal/config"
	"github.com/alexanderramin/learnhub/internal/db"
	"github.com/alexanderramin/learnhub/internal/intelligence"
	"github.com/alexanderramin/learnhub/internal/llm"
	"github.com/alexanderramin/learnhub/internal/logging"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Production: cfg.IsProduction(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	dispatcher := service.NewDispatcher(logger, protocol.ParseOptions{}, observer)

	app := &cli.App{
		Dispatcher:  dispatcher,
		Logs:        repository.NewSQLiteConversationRepo(database),
		Logger:      logger,
		HTTPAddr:    cfg.HTTPAddr,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.CatalogPath != "" {
		app.Catalog = catalog.NewCachedSource(catalog.FileSource{Path: cfg.CatalogPath}, cfg.CatalogTTL)
	}

	// Styled output only when stdout is a terminal; pipes get JSON.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var callObserver llm.Observer = llm.NewZapObserver(logger)
		if llmCfg.LogCalls {
			callObserver = llm.NewLogObserver(os.Stderr)
		}
		app.Chat = intelligence.NewChatService(
			llm.NewChatClient(llmCfg, callObserver),
			dispatcher,
			intelligence.ChatOptions{
				UoW:             uow,
				Logger:          logger,
				MaxCatalogChars: cfg.MaxCatalogChars,
				Observer:        observer,
			},
		)
	} else {
		logger.Debug("LLM disabled", zap.String("hint", "set LEARNHUB_LLM_ENABLED=true"))
	}

	return cli.NewRootCmd(app).Execute()
}
