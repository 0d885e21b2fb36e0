package common_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel/common"
	"go.ytsaurus.tech/library/go/ptr"
)

func visiblePaths(schema *option.Schema, f *option.Field, cfg option.Config) []string {
	var result []string
	for _, d := range schema.Visible(f, cfg) {
		result = append(result, d.Path)
	}
	return result
}

func TestAxisConfig(t *testing.T) {
	b := option.NewBuilder()
	b.Scope("custom.", "custom.").Extend(common.AxisConfig(common.AxisDefaults{SoftMin: ptr.Float64(0)}, false))
	schema, err := b.Build()
	gt.NoError(t, err).Required()

	num := &option.Field{Name: "cpu", Type: types.FieldTypeNumber}

	t.Run("all axis options for numeric field", func(t *testing.T) {
		gt.Array(t, schema.Visible(num, option.Config{})).Length(10)
	})

	t.Run("hidden placement hides appearance options", func(t *testing.T) {
		cfg := option.Config{}
		cfg.Set("custom.axisPlacement", common.AxisPlacementHidden)
		gt.Value(t, visiblePaths(schema, num, cfg)).Equal([]string{
			"custom.axisPlacement",
			"custom.scaleDistribution",
			"custom.axisCenteredZero",
			"custom.axisSoftMin",
			"custom.axisSoftMax",
		})
	})

	t.Run("time field skips label and scale", func(t *testing.T) {
		ts := &option.Field{Name: "time", Type: types.FieldTypeTime}
		gt.Array(t, schema.Applicable(ts)).Length(8)
	})

	t.Run("defaults", func(t *testing.T) {
		defaults := schema.Defaults(num)
		gt.Value(t, defaults.String("custom.axisPlacement")).Equal(common.AxisPlacementAuto)
		gt.Value(t, defaults.String("custom.scaleDistribution.type")).Equal(common.ScaleLinear)
		gt.Value(t, defaults.Lookup("custom.axisSoftMin")).Equal(0.0)
		gt.Bool(t, defaults.Has("custom.axisSoftMax")).False()
	})

	t.Run("log scale hides centered zero", func(t *testing.T) {
		cfg := option.Config{}
		cfg.Set("custom.scaleDistribution", map[string]any{"type": common.ScaleLog, "log": 2})
		for _, p := range visiblePaths(schema, num, cfg) {
			gt.Value(t, p).NotEqual("custom.axisCenteredZero")
		}
	})
}

func TestAxisConfig_HideScale(t *testing.T) {
	schema := option.NewBuilder().Extend(common.AxisConfig(common.AxisDefaults{}, true)).MustBuild()
	_, ok := schema.ByID("scaleDistribution")
	gt.Bool(t, ok).False()
}

func TestScaleDistributionProcessor(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    any
		wantErr bool
	}{
		{name: "linear drops log", value: map[string]any{"type": "linear", "log": 10}, want: map[string]any{"type": "linear"}},
		{name: "log default base", value: map[string]any{"type": "log"}, want: map[string]any{"type": "log", "log": 2.0}},
		{name: "symlog", value: map[string]any{"type": "symlog", "log": 10, "linearThreshold": "1"},
			want: map[string]any{"type": "symlog", "log": 10.0, "linearThreshold": 1.0}},
		{name: "bad base", value: map[string]any{"type": "log", "log": 3}, wantErr: true},
		{name: "bad type", value: map[string]any{"type": "sqrt"}, wantErr: true},
		{name: "not an object", value: "log", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := common.ScaleDistributionProcessor(nil, tt.value)
			if tt.wantErr {
				gt.Error(t, err).Is(option.ErrInvalidValue)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestLegendOptions(t *testing.T) {
	schema := option.NewBuilder().Extend(common.LegendOptions(true, true)).MustBuild()

	defaults := schema.Defaults(nil)
	gt.Bool(t, defaults.Bool("legend.showLegend")).True()
	gt.Value(t, defaults.String("legend.placement")).Equal("bottom")

	t.Run("hidden legend", func(t *testing.T) {
		cfg := option.Config{}
		cfg.Set("legend.showLegend", false)
		gt.Value(t, visiblePaths(schema, nil, cfg)).Equal([]string{"legend.showLegend"})
	})

	t.Run("width only on the right", func(t *testing.T) {
		cfg := defaults.Clone()
		gt.Array(t, schema.Visible(nil, cfg)).Length(4)
		cfg.Set("legend.placement", "right")
		gt.Array(t, schema.Visible(nil, cfg)).Length(5)
	})

	t.Run("partial config", func(t *testing.T) {
		gt.Value(t, visiblePaths(schema, nil, option.Config{"legend": 1})).Equal([]string{
			"legend.showLegend",
			"legend.calcs",
		})
	})

	t.Run("without calcs", func(t *testing.T) {
		s := option.NewBuilder().Extend(common.LegendOptions(false, false)).MustBuild()
		gt.Number(t, s.Len()).Equal(4)
		gt.Bool(t, s.Defaults(nil).Bool("legend.showLegend")).False()
	})
}

func TestTooltipOptions(t *testing.T) {
	schema := option.NewBuilder().
		Extend(common.TooltipOptions(false, true, common.TooltipDefaults{})).
		MustBuild()
	gt.Number(t, schema.Len()).Equal(5)

	single := option.Config{}
	single.Set("tooltip.mode", common.TooltipSingle)
	gt.Value(t, visiblePaths(schema, nil, single)).Equal([]string{
		"tooltip.mode", "tooltip.hoverProximity", "tooltip.maxWidth",
	})

	multi := option.Config{}
	multi.Set("tooltip.mode", common.TooltipMulti)
	gt.Array(t, schema.Visible(nil, multi)).Length(5)

	hidden := option.Config{}
	hidden.Set("tooltip.mode", common.TooltipNone)
	gt.Array(t, schema.Visible(nil, hidden)).Length(1)

	t.Run("single only", func(t *testing.T) {
		s := option.NewBuilder().
			Extend(common.TooltipOptions(true, false, common.TooltipDefaults{Mode: common.TooltipNone})).
			MustBuild()
		mode, ok := s.ByID("tooltip.mode")
		gt.Bool(t, ok).True()
		gt.Array(t, mode.Settings.(option.SelectSettings).Options).Length(2)
		gt.Value(t, s.Defaults(nil).String("tooltip.mode")).Equal(common.TooltipNone)
	})
}

func TestStackingAndHideFrom(t *testing.T) {
	b := option.NewBuilder()
	b.Scope("custom.", "custom.").Extend(
		common.StackingConfig(common.StackingDefaults{}, []string{"Graph styles"}),
		common.HideFrom(),
	)
	schema := b.MustBuild()

	stacking, ok := schema.ByID("custom.stacking")
	gt.Bool(t, ok).True()
	gt.Value(t, stacking.Path).Equal("custom.stacking")

	hideFrom, ok := schema.ByID("custom.hideFrom")
	gt.Bool(t, ok).True()
	gt.Bool(t, hideFrom.HideFromDefaults).True()

	str := &option.Field{Name: "host", Type: types.FieldTypeString}
	gt.Array(t, schema.Applicable(str)).Length(1)

	defaults := schema.Defaults(&option.Field{Name: "cpu", Type: types.FieldTypeNumber})
	gt.Value(t, defaults.String("custom.stacking.group")).Equal("A")
	gt.Value(t, defaults.String("custom.stacking.mode")).Equal(common.StackingNone)
}

func TestReduceOptions(t *testing.T) {
	schema := option.NewBuilder().Extend(common.ReduceOptions(true)).MustBuild()
	defaults := schema.Defaults(nil)

	t.Run("calculate shows calcs", func(t *testing.T) {
		gt.Value(t, visiblePaths(schema, nil, defaults)).Equal([]string{
			"reduceOptions.values",
			"reduceOptions.calcs",
			"reduceOptions.fields",
		})
		gt.Value(t, defaults.Lookup("reduceOptions.calcs")).Equal([]any{common.ReduceLastNotNull})
	})

	t.Run("all values shows limit", func(t *testing.T) {
		cfg := defaults.Clone()
		cfg.Set("reduceOptions.values", true)
		gt.Value(t, visiblePaths(schema, nil, cfg)).Equal([]string{
			"reduceOptions.values",
			"reduceOptions.limit",
			"reduceOptions.fields",
		})
	})

	t.Run("unset values hides both", func(t *testing.T) {
		gt.Value(t, visiblePaths(schema, nil, option.Config{})).Equal([]string{
			"reduceOptions.values",
			"reduceOptions.fields",
		})
	})

	t.Run("field choices", func(t *testing.T) {
		d, ok := schema.ByPath("reduceOptions.fields", nil)
		gt.Bool(t, ok).True()
		settings := d.Settings.(option.SelectSettings).Resolve([]*option.Field{
			{Name: "cpu.total", Type: types.FieldTypeNumber},
			{Name: "mem", DisplayName: "Memory", Type: types.FieldTypeNumber},
		})
		gt.Array(t, settings.Options).Length(4).Required()
		gt.Value(t, settings.Options[2].Value).Equal(any(`/^cpu\.total$/`))
		gt.Value(t, settings.Options[3].Label).Equal("Memory")
	})

	t.Run("without field matcher", func(t *testing.T) {
		s := option.NewBuilder().Extend(common.ReduceOptions(false)).MustBuild()
		_, ok := s.ByPath("reduceOptions.fields", nil)
		gt.Bool(t, ok).False()
		gt.Number(t, s.Len()).Equal(3)
	})
}

func TestOrientation(t *testing.T) {
	schema := option.NewBuilder().Extend(common.Orientation([]string{"Layout"})).MustBuild()
	d, ok := schema.ByID("orientation")
	gt.Bool(t, ok).True()
	gt.Value(t, d.Category).Equal([]string{"Layout"})
	gt.Value(t, schema.Defaults(nil).String("orientation")).Equal(common.OrientationAuto)
}
