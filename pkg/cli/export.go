package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type schemaExport struct {
	Version string                  `json:"version"`
	Plugins []*usecase.PluginDetail `json:"plugins"`
}

func cmdExport() *cli.Command {
	var plugins config.Plugins
	var output config.Output

	var flags []cli.Flag
	flags = append(flags, plugins.Flags()...)
	flags = append(flags, output.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export the option schemas of every plugin as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) (err error) {
			uc, err := offlineUseCases(ctx, &plugins)
			if err != nil {
				return err
			}

			export := schemaExport{Version: c.Root().Version}
			for _, summary := range uc.Plugin.ListPlugins(ctx) {
				detail, err := uc.Plugin.GetPlugin(ctx, summary.ID)
				if err != nil {
					return err
				}
				export.Plugins = append(export.Plugins, detail)
			}

			w, err := output.Open(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := w.Close(); cerr != nil && err == nil {
					err = goerr.Wrap(cerr, "failed to close output")
				}
			}()

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(export); err != nil {
				return goerr.Wrap(err, "failed to write schema export")
			}

			logging.From(ctx).Info("schemas exported", "plugins", len(export.Plugins))
			return nil
		},
	}
}
