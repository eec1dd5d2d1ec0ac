package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nhle/taskflow/internal/logging"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dbPath     string
}

// env is the opened application state behind a command.
type env struct {
	cfg    *model.AppConfig
	logger *log.Logger
	kv     *store.SQLiteStore
	tasks  *tasks.Store
	prefs  *store.Preferences

	logCloser io.Closer
}

// openEnv loads configuration, opens the log file and the database, and
// loads the task collection.
func openEnv(ctx context.Context, g *globalOptions) (*env, error) {
	path := g.configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	kv, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		closer.Close()
		return nil, err
	}

	ts, err := tasks.Open(ctx, store.NewTaskRepository(kv, logger),
		tasks.WithLogger(logger),
		tasks.WithDefaultCategory(cfg.Tasks.DefaultCategory),
	)
	if err != nil {
		kv.Close()
		closer.Close()
		return nil, err
	}

	logger.Debug("environment ready", "db", cfg.DBPath, "tasks", ts.Len())
	return &env{
		cfg:       cfg,
		logger:    logger,
		kv:        kv,
		tasks:     ts,
		prefs:     store.NewPreferences(kv),
		logCloser: closer,
	}, nil
}

// Close releases the database and the log file.
func (e *env) Close() error {
	err := e.kv.Close()
	if cerr := e.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}
