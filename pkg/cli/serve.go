package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskmatch/pkg/controller/http"
	"github.com/secmon-lab/riskmatch/pkg/service/worker"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var corsOrigins []string
	var watch bool
	var coverageInterval time.Duration
	var wsCfg config.Workspace

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKMATCH_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin for browser clients (repeatable)",
			Sources:     cli.EnvVars("RISKMATCH_CORS_ORIGIN"),
			Destination: &corsOrigins,
		},
		&cli.BoolFlag{
			Name:        "watch",
			Usage:       "Reload workspace files when they change",
			Sources:     cli.EnvVars("RISKMATCH_WATCH"),
			Destination: &watch,
		},
		&cli.DurationFlag{
			Name:        "coverage-interval",
			Usage:       "Recompute workspace coverage periodically and log newly uncovered risks (0 disables)",
			Sources:     cli.EnvVars("RISKMATCH_COVERAGE_INTERVAL"),
			Destination: &coverageInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, wsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := loadUseCases(ctx, &wsCfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			// Start workspace file watcher if requested
			watchDone := make(chan struct{})
			if watch {
				watcher, err := wsCfg.NewWatcher(uc)
				if err != nil {
					return goerr.Wrap(err, "failed to start workspace watcher")
				}
				go func() {
					defer close(watchDone)
					if err := watcher.Run(ctx); err != nil {
						logging.Default().Error("workspace watcher stopped", "error", err)
					}
				}()
				logging.Default().Info("Watching workspace files for changes")
			} else {
				close(watchDone)
			}

			// Start coverage worker if an interval is given
			var coverageWorker *worker.CoverageWorker
			if coverageInterval > 0 {
				coverageWorker = worker.NewCoverageWorker(uc.Recommend, uc.Workspace, coverageInterval)
				coverageWorker.Start(ctx)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Recommend, uc.Workspace, httpctrl.WithCORSOrigins(corsOrigins)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"workspaces", len(uc.Workspace.List()),
					"watch", watch,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			}

			// Stop background workers first
			if coverageWorker != nil {
				coverageWorker.Stop()
			}
			cancel()
			<-watchDone

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
