package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	httpctrl "github.com/secmon-lab/vizopts/pkg/controller/http"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/secmon-lab/vizopts/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var metricsNamespace string
	var repoCfg config.Repository
	var plugins config.Plugins

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("VIZOPTS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "metrics-namespace",
			Usage:       "Namespace of the Prometheus metrics",
			Value:       "vizopts",
			Sources:     cli.EnvVars("VIZOPTS_METRICS_NAMESPACE"),
			Destination: &metricsNamespace,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, plugins.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := plugins.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure plugins")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			metrics := usecase.NewMetrics(metricsNamespace)
			uc, err := usecase.New(repo, usecase.WithRegistry(registry), usecase.WithMetrics(metrics))
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithMetrics(metrics)),
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
					"plugins", len(registry.List()),
					"backend", repoCfg.Backend(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
