package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"todolist/internal/app"
	"todolist/internal/config"
	"todolist/internal/store"
)

// env is what every command runs against: the settings, an open store and
// the logger installed as the slog default.
type env struct {
	manager *config.Manager
	config  config.Config
	store   store.Store
	logger  *slog.Logger
}

func (o *rootOptions) loadConfig() (*config.Manager, error) {
	m, err := config.NewManager(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return m, nil
}

// open loads the settings, installs a text logger writing to logOut and
// opens the store. The caller closes the store.
func (o *rootOptions) open(logOut io.Writer) (*env, error) {
	m, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := m.Config()

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	path := cfg.Database.Path
	if o.dbPath != "" {
		path = o.dbPath
	}

	s, err := store.Open(cfg.Database.Driver, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "driver", cfg.Database.Driver, "path", path, "config", m.Path())

	return &env{manager: m, config: cfg, store: s, logger: logger}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// controllerOptions carries the configured theme and logger into a
// front-end's controller.
func (e *env) controllerOptions() []app.Option {
	return []app.Option{
		app.WithDarkMode(e.config.Theme.DarkMode),
		app.WithLogger(e.logger),
	}
}

// watchTheme follows the settings file and sends the configured theme on
// the returned channel whenever it is saved. The channel is closed when
// ctx is done.
func (e *env) watchTheme(ctx context.Context) <-chan bool {
	themes := make(chan bool, 1)
	go func() {
		defer close(themes)
		err := e.manager.Watch(ctx, func(cfg config.Config) {
			select {
			case themes <- cfg.Theme.DarkMode:
			default:
			}
		})
		if err != nil {
			e.logger.Warn("config watch stopped", "error", err)
		}
	}()
	return themes
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
