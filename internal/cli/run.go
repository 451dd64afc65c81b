package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todolist/internal/config"
	"todolist/internal/desktop"
	"todolist/internal/handlers"
	"todolist/internal/tui"
)

// frontEnd runs one interactive front-end until the user leaves it.
type frontEnd func(ctx context.Context, e *env, themes <-chan bool) error

var runDesktop frontEnd = func(ctx context.Context, e *env, themes <-chan bool) error {
	a := fyneapp.NewWithID("todolist")
	w, err := desktop.NewWindow(ctx, a, e.store, e.config.App, e.controllerOptions()...)
	if err != nil {
		return err
	}
	w.FollowTheme(ctx, themes)
	w.ShowAndRun()
	return nil
}

var runTUI frontEnd = func(ctx context.Context, e *env, themes <-chan bool) error {
	m, err := tui.New(ctx, e.store, e.controllerOptions()...)
	if err != nil {
		return err
	}
	return tui.Run(ctx, m, themes)
}

func runFrontEnd(cmd *cobra.Command, opts *rootOptions, run frontEnd) error {
	e, err := opts.open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	return run(ctx, e, e.watchTheme(ctx))
}

func desktopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "desktop",
		Short: "Open the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontEnd(cmd, opts, runDesktop)
		},
	}
}

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal is taken over by the program; log next to the
			// config file instead.
			m, err := opts.loadConfig()
			if err != nil {
				return err
			}
			f, err := tea.LogToFile(filepath.Join(filepath.Dir(m.Path()), "tui.log"), "todolist")
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()

			e, err := opts.open(f)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := context.WithCancel(cmdContext(cmd))
			defer cancel()

			return runTUI(ctx, e, e.watchTheme(ctx))
		},
	}
}

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if addr == "" {
				addr = e.config.Web.Addr
			}
			return serve(cmdContext(cmd), cmd, e, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides web.addr)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, e *env, addr string) error {
	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return err
	}
	h := handlers.New(e.store, tmpl, e.config.Theme.DarkMode)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		err := e.manager.Watch(ctx, func(cfg config.Config) {
			h.SetDarkMode(cfg.Theme.DarkMode)
		})
		if err != nil {
			e.logger.Warn("config watch stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", displayAddr(addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	e.logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func themeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the configured theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				var update func(*config.Config)
				switch args[0] {
				case "dark":
					update = func(c *config.Config) { c.Theme.DarkMode = true }
				case "light":
					update = func(c *config.Config) { c.Theme.DarkMode = false }
				case "toggle":
					update = func(c *config.Config) { c.Theme.DarkMode = !c.Theme.DarkMode }
				default:
					return fmt.Errorf("unknown theme %q", args[0])
				}
				if err := m.Update(update); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			}

			name := "light"
			if m.Config().Theme.DarkMode {
				name = "dark"
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
