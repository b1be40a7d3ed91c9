// Command deckhand is the terminal client for the vessel maintenance
// platform. It wires the driven adapters (platform API, config file,
// SQLite history, session auth) into the core services and hands them to
// the cobra CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quayside-labs/deckhand/internal/adapters/driven/auth"
	configfile "github.com/quayside-labs/deckhand/internal/adapters/driven/config/file"
	"github.com/quayside-labs/deckhand/internal/adapters/driven/platform"
	"github.com/quayside-labs/deckhand/internal/adapters/driven/storage/memory"
	"github.com/quayside-labs/deckhand/internal/adapters/driven/storage/sqlite"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/cli"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/services"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config, err := configfile.NewConfigStore(os.Getenv("DECKHAND_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Hot reload keeps routing and grouping settings live while the TUI
	// runs. A watcher failure is not fatal; edits just need a restart.
	if watcher, werr := configfile.NewWatcher(config); werr != nil {
		logger.Debug("Config watcher unavailable: %v", werr)
	} else {
		go watcher.Run(ctx)
		defer watcher.Close() //nolint:errcheck
	}

	session := auth.NewSessionProvider(config)

	client := platform.NewClient(platform.Config{
		BaseURL: config.GetString("platform.base_url"),
		Timeout: time.Duration(config.GetInt("platform.timeout_seconds")) * time.Second,
		Tokens:  session,
	})

	history := openHistoryStore(os.Getenv("DECKHAND_DATA_DIR"))

	ledger := services.NewLedgerService(platform.NewLedgerRecorder(client), session)
	searchSvc := services.NewSearchService(platform.NewSearchBackend(client), config, history)
	situationSvc := services.NewSituationService(platform.NewActionExecutor(client), ledger)
	surfaceSvc := services.NewSurfaceService(situationSvc, platform.NewLinkResolver(client), ledger)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Search:    searchSvc,
		Situation: situationSvc,
		Surface:   surfaceSvc,
		Filters:   services.NewFilterService(),
		History:   services.NewHistoryService(history),
		Config:    config,
		Session:   session,
	})

	return cli.ExecuteContext(ctx)
}

// openHistoryStore opens the SQLite history store, falling back to a
// process-local one when the database cannot be opened (read-only home,
// concurrent instance holding the lock).
func openHistoryStore(dataDir string) driven.HistoryStore {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Debug("History database unavailable, using in-memory store: %v", err)
		return memory.NewHistoryStore()
	}
	return store.HistoryStore()
}
