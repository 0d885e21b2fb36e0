package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/editor"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/builtin"
	"github.com/secmon-lab/vizopts/pkg/panel/table"
	"github.com/secmon-lab/vizopts/pkg/panel/timeseries"
	"github.com/secmon-lab/vizopts/pkg/repository/memory"
	"github.com/secmon-lab/vizopts/pkg/usecase"
)

func testPlugin(t *testing.T) *panel.Plugin {
	t.Helper()
	p, err := panel.NewPlugin("test-panel", "Test").
		SetPanelOptions(func(b *option.Builder) {
			b.
				AddRadio(option.Descriptor{
					Path:         "mode",
					Name:         "Mode",
					Category:     []string{"Display"},
					DefaultValue: "a",
					Settings: option.SelectSettings{Options: []option.SelectableValue{
						{Value: "a"}, {Value: "b"},
					}},
				}).
				AddNumberInput(option.Descriptor{
					Path:     "size",
					Name:     "Size",
					Category: []string{"Display"},
					ShowIf:   func(c option.Config) bool { return c.String("mode") == "b" },
				}).
				AddStringArray(option.Descriptor{
					Path:         "tags",
					Name:         "Tags",
					DefaultValue: []any{"x", "y"},
					ItemsCount:   option.ListCount,
				})
		}).
		Build()
	gt.NoError(t, err).Required()
	return p
}

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	registry, err := builtin.NewRegistry()
	gt.NoError(t, err).Required()
	gt.NoError(t, registry.Register(testPlugin(t))).Required()
	uc, err := usecase.New(memory.New(), append([]usecase.Option{usecase.WithRegistry(registry)}, opts...)...)
	gt.NoError(t, err).Required()
	return uc
}

func itemPaths(pane *usecase.Pane) []string {
	var paths []string
	for _, g := range pane.Groups {
		for _, item := range g.Items {
			paths = append(paths, item.Path)
		}
	}
	return paths
}

func findItem(t *testing.T, pane *usecase.Pane, path string) usecase.PaneItem {
	t.Helper()
	for _, g := range pane.Groups {
		for _, item := range g.Items {
			if item.Path == path {
				return item
			}
		}
	}
	t.Fatalf("item %s not found", path)
	return usecase.PaneItem{}
}

func TestListAndGetPlugins(t *testing.T) {
	uc := newUseCases(t)
	ctx := context.Background()

	plugins := uc.Plugin.ListPlugins(ctx)
	gt.Array(t, plugins).Length(4).Required()
	gt.Value(t, plugins[0].ID).Equal(timeseries.ID)
	gt.Value(t, plugins[3].ID).Equal(types.PluginID("test-panel"))
	gt.Number(t, plugins[3].PanelOptionCount).Equal(3)

	detail, err := uc.Plugin.GetPlugin(ctx, "test-panel")
	gt.NoError(t, err).Required()
	gt.Array(t, detail.Options).Length(3).Required()
	gt.Bool(t, detail.Options[1].Conditional).True()

	_, err = uc.Plugin.GetPlugin(ctx, "missing")
	gt.Error(t, err).Is(panel.ErrPluginNotFound)
}

func TestOptionsPane_Visibility(t *testing.T) {
	uc := newUseCases(t)
	ctx := context.Background()

	pane, err := uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{PluginID: "test-panel"})
	gt.NoError(t, err).Required()
	gt.Value(t, pane.Target).Equal(usecase.PaneTargetPanel)
	gt.Value(t, itemPaths(pane)).Equal([]string{"mode", "tags"})
	gt.Array(t, pane.Groups).Length(2).Required()
	gt.Value(t, pane.Groups[0].Category).Equal([]string{"Display"})

	mode := findItem(t, pane, "mode")
	gt.Value(t, mode.Value).Equal(any("a"))
	gt.Bool(t, mode.IsDefault).True()
	gt.Value(t, mode.EditorInfo).NotNil()
	gt.Value(t, mode.EditorInfo.Kind).Equal(types.EditorRadio)

	tags := findItem(t, pane, "tags")
	gt.Value(t, tags.Count).NotNil()
	gt.Number(t, *tags.Count).Equal(2)

	pane, err = uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{
		PluginID: "test-panel",
		Current:  option.Config{"mode": "b"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, itemPaths(pane)).Equal([]string{"mode", "size", "tags"})
	gt.Bool(t, findItem(t, pane, "mode").IsDefault).False()
}

func TestOptionsPane_FieldTarget(t *testing.T) {
	uc := newUseCases(t)
	ctx := context.Background()

	fields := []*option.Field{
		{Name: "time", Type: types.FieldTypeTime},
		{Name: "cpu", Type: types.FieldTypeNumber},
		{Name: "mem", Type: types.FieldTypeNumber},
	}

	defaults, err := uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{
		PluginID: timeseries.ID,
		Target:   usecase.PaneTargetField,
		Fields:   fields,
	})
	gt.NoError(t, err).Required()
	for _, path := range itemPaths(defaults) {
		gt.Value(t, path).NotEqual("custom.fillBelowTo")
	}

	override, err := uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{
		PluginID: timeseries.ID,
		Target:   usecase.PaneTargetField,
		Field:    fields[1],
		Fields:   fields,
	})
	gt.NoError(t, err).Required()
	fillBelow := findItem(t, override, "custom.fillBelowTo")
	gt.Value(t, fillBelow.FieldChoices).Equal([]string{"cpu", "mem"})
}

func TestOptionsPane_ResolvesDataChoices(t *testing.T) {
	uc := newUseCases(t)

	pane, err := uc.Plugin.OptionsPane(context.Background(), usecase.PaneRequest{
		PluginID: table.ID,
		Current:  option.Config{"footer": map[string]any{"show": true}},
		Fields: []*option.Field{
			{Name: "host", Type: types.FieldTypeString},
			{Name: "cpu", Type: types.FieldTypeNumber},
		},
	})
	gt.NoError(t, err).Required()

	settings, ok := findItem(t, pane, "footer.fields").Settings.(option.SelectSettings)
	gt.Bool(t, ok).True()
	gt.Array(t, settings.Options).Length(1).Required()
	gt.Value(t, settings.Options[0].Value).Equal(any("cpu"))
}

func TestNew_RejectsIncompleteEditorRegistry(t *testing.T) {
	editors := editor.NewRegistry().Register(editor.Editor{Kind: types.EditorRadio, Name: "Radio"})
	_, err := usecase.New(memory.New(), usecase.WithEditors(editors))
	gt.Error(t, err).Is(editor.ErrIncompleteRegistry)

	_, err = usecase.New(memory.New(), usecase.WithEditors(editor.NewRegistry()))
	gt.Error(t, err).Is(editor.ErrIncompleteRegistry)

	_, err = usecase.New(memory.New())
	gt.NoError(t, err)
}

func TestOptionsPane_UnknownEditorIsUnsupported(t *testing.T) {
	registry := panel.NewRegistry()
	gt.NoError(t, registry.Register(testPlugin(t))).Required()
	editors := editor.NewRegistry().Register(editor.Editor{Kind: types.EditorRadio, Name: "Radio"})
	uc := usecase.NewPluginUseCase(registry, editors, nil)

	pane, err := uc.OptionsPane(context.Background(), usecase.PaneRequest{PluginID: "test-panel"})
	gt.NoError(t, err).Required()
	gt.Bool(t, findItem(t, pane, "mode").Unsupported).False()
	gt.Bool(t, findItem(t, pane, "tags").Unsupported).True()
}

func TestOptionsPane_Errors(t *testing.T) {
	uc := newUseCases(t)
	ctx := context.Background()

	_, err := uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{PluginID: "test-panel", Target: "sidebar"})
	gt.Error(t, err).Is(usecase.ErrInvalidRequest)

	_, err = uc.Plugin.OptionsPane(ctx, usecase.PaneRequest{PluginID: "missing"})
	gt.Error(t, err).Is(panel.ErrPluginNotFound)
}

func TestEffectiveConfigs(t *testing.T) {
	metrics := usecase.NewMetrics("vizopts_test")
	uc := newUseCases(t, usecase.WithMetrics(metrics))

	fc := model.FieldConfig{
		Defaults: option.Config{"unit": "short"},
		Overrides: []override.Rule{
			{
				Matcher:    override.Matcher{ID: types.MatcherByName, Options: "latency"},
				Properties: []override.Property{{ID: "unit", Value: "ms"}},
			},
			{
				Matcher: override.Matcher{ID: types.MatcherAll},
				Properties: []override.Property{
					{ID: "decimals", Value: "lots"},
					{ID: "custom.doesNotExist", Value: true},
				},
			},
		},
	}
	fields := []*option.Field{
		{Name: "latency", Type: types.FieldTypeNumber},
		{Name: "cpu", Type: types.FieldTypeNumber},
	}

	results, err := uc.Plugin.EffectiveConfigs(context.Background(), timeseries.ID, fc, fields)
	gt.NoError(t, err).Required()
	gt.Array(t, results).Length(2).Required()

	gt.Value(t, results[0].Config.String("unit")).Equal("ms")
	gt.Value(t, results[1].Config.String("unit")).Equal("short")
	gt.Value(t, results[1].Config.String("custom.drawStyle")).Equal(timeseries.DrawLine)

	for _, r := range results {
		gt.Array(t, r.Failures).Length(1).Required()
		gt.Value(t, r.Failures[0].Path).Equal("decimals")
		gt.String(t, r.Failures[0].Error).NotEqual("")
		gt.Array(t, r.Ignored).Length(1)
	}

	gt.Number(t, testutil.ToFloat64(metrics.OverrideFailures.WithLabelValues("timeseries"))).Equal(2)
	gt.Number(t, testutil.ToFloat64(metrics.OverrideIgnored.WithLabelValues("timeseries"))).Equal(2)
	gt.Number(t, testutil.ToFloat64(metrics.OverrideApplied.WithLabelValues("timeseries"))).Equal(1)
}

func TestEffectiveConfigs_RequiresFields(t *testing.T) {
	uc := newUseCases(t)
	_, err := uc.Plugin.EffectiveConfigs(context.Background(), timeseries.ID, model.FieldConfig{}, []*option.Field{nil})
	gt.Error(t, err).Is(usecase.ErrInvalidRequest)
}
