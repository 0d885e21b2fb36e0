package common

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// LegendOptions registers the legend panel options
func LegendOptions(includeCalcs, showLegend bool) option.Contributor {
	category := []string{"Legend"}
	shown := func(c option.Config) bool { return c.Bool("legend.showLegend") }

	return func(b *option.Builder) {
		b.
			AddBooleanSwitch(option.Descriptor{
				Path:         "legend.showLegend",
				Name:         "Visibility",
				Category:     category,
				DefaultValue: showLegend,
			}).
			AddRadio(option.Descriptor{
				Path:         "legend.displayMode",
				Name:         "Mode",
				Category:     category,
				DefaultValue: LegendList,
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: LegendList, Label: "List"},
					{Value: LegendTable, Label: "Table"},
				}},
				ShowIf: shown,
			}).
			AddRadio(option.Descriptor{
				Path:         "legend.placement",
				Name:         "Placement",
				Category:     category,
				DefaultValue: AxisPlacementBottom,
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: AxisPlacementBottom, Label: "Bottom"},
					{Value: AxisPlacementRight, Label: "Right"},
				}},
				ShowIf: shown,
			}).
			AddNumberInput(option.Descriptor{
				Path:     "legend.width",
				Name:     "Width",
				Category: category,
				Settings: option.NumberSettings{Placeholder: "Auto"},
				ShowIf: func(c option.Config) bool {
					return c.Bool("legend.showLegend") && c.String("legend.placement") == AxisPlacementRight
				},
			})

		if includeCalcs {
			b.AddStatsPicker(option.Descriptor{
				Path:         "legend.calcs",
				Name:         "Values",
				Description:  "Select values or calculations to show in legend",
				Category:     category,
				DefaultValue: []any{},
				Settings:     option.StatsPickerSettings{AllowMultiple: true},
				ShowIf: func(c option.Config) bool {
					v, ok := c.Get("legend.showLegend")
					return !ok || v != false
				},
			})
		}
	}
}
