package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdApply() *cli.Command {
	var plugins config.Plugins
	var fieldArgs []string
	var asJSON bool

	flags := []cli.Flag{
		fieldFlag(&fieldArgs),
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the effective configurations as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, plugins.Flags()...)

	return &cli.Command{
		Name:      "apply",
		Usage:     "Resolve the effective configuration of each field of a panel file",
		ArgsUsage: "PANEL_FILE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one panel file is required")
			}

			fields, err := parseFields(fieldArgs)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return goerr.Wrap(errInvalidField, "at least one --field is required")
			}

			p, err := config.LoadPanel(c.Args().First())
			if err != nil {
				return err
			}

			uc, err := offlineUseCases(ctx, &plugins)
			if err != nil {
				return err
			}

			results, err := uc.Plugin.EffectiveConfigs(ctx, p.PluginID, p.FieldConfig, fields)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			printEffective(w, results)
			return nil
		},
	}
}

func printEffective(w io.Writer, results []*usecase.EffectiveConfig) {
	header := color.New(color.FgCyan, color.Bold)
	faint := color.New(color.Faint)
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed)

	for _, r := range results {
		fmt.Fprintf(w, "%s %s\n", header.Sprint("Field"), r.Field.Title())
		flat := r.Config.Flatten()
		for _, path := range slices.Sorted(maps.Keys(flat)) {
			fmt.Fprintf(w, "  %s = %s\n", path, formatValue(flat[path]))
		}
		for _, a := range r.Applied {
			fmt.Fprintf(w, "  %s\n", faint.Sprintf("applied rule %d: %s", a.Rule, a.Path))
		}
		for _, a := range r.Ignored {
			fmt.Fprintf(w, "  %s\n", warn.Sprintf("ignored rule %d: %s (unknown option)", a.Rule, a.Path))
		}
		for _, f := range r.Failures {
			fmt.Fprintf(w, "  %s\n", fail.Sprintf("failed rule %d: %s: %s", f.Rule, f.Path, f.Error))
		}
	}
}
