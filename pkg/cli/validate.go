package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var errValidationFailed = goerr.New("panel validation failed")

func cmdValidate() *cli.Command {
	var plugins config.Plugins
	var watch bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "watch",
			Aliases:     []string{"w"},
			Usage:       "Validate again whenever a panel or plugin file changes",
			Destination: &watch,
		},
	}
	flags = append(flags, plugins.Flags()...)

	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate panel files against their plugin schemas",
		ArgsUsage: "PANEL_FILE_OR_DIR...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.New("at least one panel file or directory is required")
			}

			uc, err := offlineUseCases(ctx, &plugins)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			files, err := panelFiles(paths)
			if err != nil {
				return err
			}
			result := validateFiles(ctx, w, uc, files)

			if !watch {
				return result
			}

			watched := append(slices.Clone(paths), plugins.Dirs()...)
			logging.From(ctx).Info("watching panel files", "paths", watched)
			watcher := config.NewWatcher(watched)
			return watcher.Run(ctx, func(ctx context.Context, changed []string) {
				fmt.Fprintf(w, "\n%s\n", color.New(color.Faint).Sprintf("changed: %v", changed))
				_ = revalidate(ctx, w, uc, &plugins, paths, changed)
			})
		},
	}
}

// revalidate validates the changed panel files. When plugin definitions
// changed, the plugins are reloaded and every panel file is validated again.
func revalidate(ctx context.Context, w io.Writer, uc *usecase.UseCases, plugins *config.Plugins, paths, changed []string) error {
	var pluginFiles, panels []string
	for _, path := range changed {
		if plugins.Owns(path) {
			pluginFiles = append(pluginFiles, path)
		} else {
			panels = append(panels, path)
		}
	}
	if len(pluginFiles) == 0 {
		return validateFiles(ctx, w, uc, panels)
	}

	if _, err := plugins.Reload(ctx, uc.Plugins(), pluginFiles); err != nil {
		fmt.Fprintf(w, "%s plugins: %v\n", color.New(color.FgRed, color.Bold).Sprint("FAIL"), err)
		return err
	}
	all, err := panelFiles(paths)
	if err != nil {
		return err
	}
	return validateFiles(ctx, w, uc, all)
}

// panelFiles expands directories into the panel files they contain
func panelFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to stat path", goerr.V("path", path))
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read directory", goerr.V("path", path))
		}
		for _, entry := range entries {
			if !entry.IsDir() && config.IsPanelFile(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	return files, nil
}

// validateFiles prints the issues of every file and fails when any file
// cannot be loaded or has error issues
func validateFiles(ctx context.Context, w io.Writer, uc *usecase.UseCases, files []string) error {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	okColor := color.New(color.FgGreen)

	failed := 0
	for _, file := range files {
		p, err := config.LoadPanel(file)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", errColor.Sprint("FAIL"), file, err)
			continue
		}

		issues, err := uc.Panel.ValidatePanel(ctx, p)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", errColor.Sprint("FAIL"), file, err)
			continue
		}

		if usecase.HasErrors(issues) {
			failed++
			fmt.Fprintf(w, "%s %s\n", errColor.Sprint("FAIL"), file)
		} else {
			fmt.Fprintf(w, "%s %s\n", okColor.Sprint("OK"), file)
		}
		for _, issue := range issues {
			label := warnColor.Sprint(issue.Severity)
			if issue.Severity == usecase.SeverityError {
				label = errColor.Sprint(issue.Severity)
			}
			fmt.Fprintf(w, "  %s [%s] %s%s: %s\n", label, issue.Scope, issue.Path, position(issue), issue.Message)
		}
	}

	if failed > 0 {
		return goerr.Wrap(errValidationFailed, "some panel files are invalid", goerr.V("failed", failed), goerr.V("total", len(files)))
	}
	return nil
}

func position(issue usecase.Issue) string {
	switch {
	case issue.Rule != nil && issue.Property != nil:
		return fmt.Sprintf(" (rule %d, property %d)", *issue.Rule, *issue.Property)
	case issue.Rule != nil:
		return fmt.Sprintf(" (rule %d)", *issue.Rule)
	default:
		return ""
	}
}
