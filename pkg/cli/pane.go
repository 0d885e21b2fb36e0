package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPane() *cli.Command {
	var plugins config.Plugins
	var pluginID string
	var target string
	var panelPath string
	var fieldArgs []string
	var forField string
	var asJSON bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "plugin",
			Aliases:     []string{"p"},
			Usage:       "Plugin ID (taken from --panel when omitted)",
			Destination: &pluginID,
		},
		&cli.StringFlag{
			Name:        "target",
			Aliases:     []string{"t"},
			Usage:       "Pane target (panel or field)",
			Value:       string(usecase.PaneTargetPanel),
			Destination: &target,
		},
		&cli.StringFlag{
			Name:        "panel",
			Usage:       "Panel file providing the current values",
			Destination: &panelPath,
		},
		fieldFlag(&fieldArgs),
		&cli.StringFlag{
			Name:        "for",
			Usage:       "Name of the field whose override pane is shown (field target)",
			Destination: &forField,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the pane as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, plugins.Flags()...)

	return &cli.Command{
		Name:  "pane",
		Usage: "Show the options pane of a plugin",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := offlineUseCases(ctx, &plugins)
			if err != nil {
				return err
			}

			fields, err := parseFields(fieldArgs)
			if err != nil {
				return err
			}

			req := usecase.PaneRequest{
				PluginID: types.PluginID(pluginID),
				Target:   usecase.PaneTarget(target),
				Fields:   fields,
			}

			if panelPath != "" {
				p, err := config.LoadPanel(panelPath)
				if err != nil {
					return err
				}
				if req.PluginID == "" {
					req.PluginID = p.PluginID
				}
				req.Current = p.Options
				if req.Target == usecase.PaneTargetField {
					req.Current = p.FieldConfig.Defaults
				}
			}
			if req.PluginID == "" {
				return goerr.New("--plugin or --panel is required")
			}

			if forField != "" {
				for _, f := range fields {
					if f.Name == forField {
						req.Field = f
					}
				}
				if req.Field == nil {
					return goerr.Wrap(errInvalidField, "--for names a field not given by --field", goerr.V("field", forField))
				}
			}

			pane, err := uc.Plugin.OptionsPane(ctx, req)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(pane)
			}
			printPane(w, pane)
			return nil
		},
	}
}

func printPane(w io.Writer, pane *usecase.Pane) {
	header := color.New(color.FgCyan, color.Bold)
	name := color.New(color.Bold)
	faint := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	fmt.Fprintf(w, "%s %s (%s)\n", header.Sprint("Plugin"), pane.PluginID, pane.Target)
	for _, group := range pane.Groups {
		title := strings.Join(group.Category, " > ")
		if title == "" {
			title = "Options"
		}
		fmt.Fprintf(w, "\n%s\n", header.Sprint(title))

		for _, item := range group.Items {
			fmt.Fprintf(w, "  %s %s", name.Sprint(item.Name), faint.Sprintf("[%s] %s", item.Editor, item.Path))
			if item.Unsupported {
				fmt.Fprint(w, warn.Sprint(" (unsupported editor)"))
			}
			fmt.Fprintln(w)

			value := formatValue(item.Value)
			if item.IsDefault {
				value += faint.Sprint(" (default)")
			}
			if item.Count != nil {
				value += faint.Sprintf(" (%d items)", *item.Count)
			}
			fmt.Fprintf(w, "    = %s\n", value)

			if len(item.FieldChoices) > 0 {
				fmt.Fprintf(w, "    fields: %s\n", strings.Join(item.FieldChoices, ", "))
			}
			if s, ok := item.Settings.(option.SelectSettings); ok && len(s.Options) > 0 {
				labels := make([]string, 0, len(s.Options))
				for _, choice := range s.Options {
					labels = append(labels, fmt.Sprintf("%v", choice.Value))
				}
				fmt.Fprintf(w, "    choices: %s\n", strings.Join(labels, " | "))
			}
		}
	}
}

func formatValue(v any) string {
	if v == nil {
		return "-"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
