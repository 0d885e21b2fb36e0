package cli

import (
	"context"
	"io"
	"os"

	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	if err := newApp(version, os.Stdout).Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

func newApp(version string, w io.Writer) *cli.Command {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "vizopts",
		Usage:   "Panel option schemas, options panes and field override resolution",
		Version: version,
		Writer:  w,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting vizopts", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdValidate(),
			cmdPane(),
			cmdApply(),
			cmdExport(),
			cmdMigrate(),
		},
	}

	return app
}
