package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/panel"
)

const gaugeLiteTOML = `
[plugin]
id = "gauge-lite"
name = "Gauge lite"

[[panel_options]]
path = "showMarkers"
name = "Show markers"
editor = "boolean"
default = true
`

func TestPlugins_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("builtin only", func(t *testing.T) {
		registry, err := config.NewPluginsForTest().Configure(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, registry.List()).Length(3)
	})

	t.Run("with declarative plugins", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "gauge.toml"), []byte(gaugeLiteTOML), 0600)).Required()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0600)).Required()

		registry, err := config.NewPluginsForTest(dir).Configure(ctx)
		gt.NoError(t, err).Required()
		plugins := registry.List()
		gt.Array(t, plugins).Length(4).Required()
		gt.Value(t, plugins[3].ID.String()).Equal("gauge-lite")
	})

	t.Run("shadowing a builtin", func(t *testing.T) {
		dir := t.TempDir()
		content := "[plugin]\nid = \"table\"\nname = \"Table\"\n"
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "table.toml"), []byte(content), 0600)).Required()

		_, err := config.NewPluginsForTest(dir).Configure(ctx)
		gt.Error(t, err).Is(panel.ErrDuplicatePlugin)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := config.NewPluginsForTest(filepath.Join(t.TempDir(), "none")).Configure(ctx)
		gt.Error(t, err)
	})
}

func TestPlugins_Owns(t *testing.T) {
	dir := t.TempDir()
	plugins := config.NewPluginsForTest(dir)

	gt.Bool(t, plugins.Owns(filepath.Join(dir, "gauge.toml"))).True()
	gt.Bool(t, plugins.Owns(filepath.Join(dir, "gauge.yml"))).True()
	gt.Bool(t, plugins.Owns(filepath.Join(dir, "notes.md"))).False()
	gt.Bool(t, plugins.Owns(filepath.Join(t.TempDir(), "gauge.toml"))).False()
}

func TestPlugins_Reload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "gauge.toml")
	gt.NoError(t, os.WriteFile(file, []byte(gaugeLiteTOML), 0600)).Required()

	plugins := config.NewPluginsForTest(dir)
	registry, err := plugins.Configure(ctx)
	gt.NoError(t, err).Required()

	updated := gaugeLiteTOML + `
[[panel_options]]
path = "label"
name = "Label"
editor = "text"
`
	gt.NoError(t, os.WriteFile(file, []byte(updated), 0600)).Required()

	loaded, err := plugins.Reload(ctx, registry, []string{file})
	gt.NoError(t, err).Required()
	gt.Array(t, loaded).Length(1)

	list := registry.List()
	gt.Array(t, list).Length(4).Required()
	gt.Value(t, list[3].ID.String()).Equal("gauge-lite")
	gt.Number(t, list[3].Options.Len()).Equal(2)

	t.Run("removed file keeps the plugin", func(t *testing.T) {
		gt.NoError(t, os.Remove(file)).Required()
		loaded, err := plugins.Reload(ctx, registry, []string{file})
		gt.NoError(t, err)
		gt.Array(t, loaded).Length(0)
		gt.Array(t, registry.List()).Length(4)
	})

	t.Run("builtin cannot be replaced", func(t *testing.T) {
		shadow := filepath.Join(dir, "table.toml")
		gt.NoError(t, os.WriteFile(shadow, []byte("[plugin]\nid = \"table\"\nname = \"Table\"\n"), 0600)).Required()

		_, err := plugins.Reload(ctx, registry, []string{shadow})
		gt.Error(t, err).Is(panel.ErrDuplicatePlugin)
		p, err := registry.Get("table")
		gt.NoError(t, err).Required()
		gt.Number(t, p.FieldConfig.Len()).NotEqual(0)
	})
}
