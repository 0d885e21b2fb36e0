package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/builtin"
	"github.com/secmon-lab/vizopts/pkg/panel/declarative"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Plugins holds CLI flags for the panel plugin registry
type Plugins struct {
	dirs []string
}

// NewPluginsForTest creates a Plugins config reading the given directories
func NewPluginsForTest(dirs ...string) *Plugins {
	return &Plugins{dirs: dirs}
}

// Flags returns CLI flags for plugin configuration
func (p *Plugins) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "plugin-dir",
			Category:    "Plugins",
			Usage:       "Directory or file of declarative plugin definitions (TOML or YAML), repeatable",
			Sources:     cli.EnvVars("VIZOPTS_PLUGIN_DIR"),
			Destination: &p.dirs,
		},
	}
}

// Configure builds a registry holding the builtin plugins followed by the
// declarative plugins found in the configured directories
func (p *Plugins) Configure(ctx context.Context) (*panel.Registry, error) {
	registry, err := builtin.NewRegistry()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register builtin plugins")
	}
	if len(p.dirs) == 0 {
		return registry, nil
	}

	loaded, err := declarative.RegisterPaths(ctx, registry, p.dirs...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load declarative plugins", goerr.V(PluginDirKey, p.dirs))
	}
	for _, plugin := range loaded {
		logging.From(ctx).Info("declarative plugin loaded",
			"plugin_id", plugin.ID,
			"field_options", plugin.FieldConfig.Len(),
			"panel_options", plugin.Options.Len(),
		)
	}
	return registry, nil
}

// Dirs returns the configured plugin directories and files
func (p *Plugins) Dirs() []string {
	return p.dirs
}

// Owns reports whether path is a plugin definition read from the configured
// directories
func (p *Plugins) Owns(path string) bool {
	clean := filepath.Clean(path)
	if _, ok := declarative.FormatOf(clean); !ok {
		return false
	}
	for _, dir := range p.dirs {
		d := filepath.Clean(dir)
		if clean == d || filepath.Dir(clean) == d {
			return true
		}
	}
	return false
}

// Reload reads the given plugin definition files again and swaps the
// plugins into registry. Removed files are skipped and their plugins stay
// registered. Builtin plugins cannot be replaced.
func (p *Plugins) Reload(ctx context.Context, registry *panel.Registry, files []string) ([]*panel.Plugin, error) {
	var existing []string
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			logging.From(ctx).Warn("plugin file is gone, keeping loaded plugin", "path", file)
			continue
		}
		existing = append(existing, file)
	}
	if len(existing) == 0 {
		return nil, nil
	}

	loaded, err := declarative.LoadPaths(ctx, existing...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reload declarative plugins", goerr.V(PluginDirKey, existing))
	}
	for _, plugin := range loaded {
		if builtin.IsBuiltin(plugin.ID) {
			return nil, goerr.Wrap(panel.ErrDuplicatePlugin, "declarative plugin shadows a builtin",
				goerr.V(panel.PluginIDKey, plugin.ID))
		}
	}
	for _, plugin := range loaded {
		registry.Replace(plugin)
		logging.From(ctx).Info("declarative plugin reloaded",
			"plugin_id", plugin.ID,
			"field_options", plugin.FieldConfig.Len(),
			"panel_options", plugin.Options.Len(),
		)
	}
	return loaded, nil
}
