// app.go wires the shared application components used by every command.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/liftlog-dev/liftlog/internal/api"
	"github.com/liftlog-dev/liftlog/internal/config"
	"github.com/liftlog-dev/liftlog/internal/gym"
	"github.com/liftlog-dev/liftlog/internal/log"
	"github.com/liftlog-dev/liftlog/internal/session"
)

// appContext bundles the config, session manager, and services a command
// needs. Built once per invocation; Close releases the session store.
type appContext struct {
	cfg     *config.Config
	dataDir string
	store   *session.Store
	logger  *log.Logger
	manager *session.Manager
	service *gym.Service
}

// newAppContext loads config (falling back to defaults when the file is
// absent), opens the session store, and restores any persisted session.
func newAppContext() (*appContext, error) {
	dataDir := config.DefaultDataDir()
	cfg, err := config.ReadConfig(dataDir)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	dataDir = cfg.DataPath()

	logger, err := log.NewLogger(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}

	store, err := session.NewStore(filepath.Join(dataDir, "liftlog.db"))
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	client := api.New(cfg.Server.BaseURL, cfg.Server.Timeout())
	manager := session.NewManager(client, store, logger)
	// A failed restore means a missing session, never a startup failure.
	_ = manager.Restore()

	return &appContext{
		cfg:     cfg,
		dataDir: dataDir,
		store:   store,
		logger:  logger,
		manager: manager,
		service: gym.NewService(client, logger),
	}, nil
}

// Close releases resources held by the context.
func (a *appContext) Close() {
	_ = a.store.Close()
}
