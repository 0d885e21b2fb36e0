// Package heatmap defines the heatmap panel plugin
package heatmap

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/common"
	"go.ytsaurus.tech/library/go/ptr"
)

// ID is the plugin ID of the heatmap panel
const ID types.PluginID = "heatmap"

// Color modes and scales
const (
	ColorModeScheme  = "scheme"
	ColorModeOpacity = "opacity"

	ColorScaleExponential = "exponential"
	ColorScaleLinear      = "linear"
)

// New builds the heatmap plugin
func New() (*panel.Plugin, error) {
	return panel.NewPlugin(ID, "Heatmap").
		Describe("Distribution of values over time").
		UseFieldConfig(panel.FieldConfigOptions{
			DisableStandardOptions: panel.AllStandardPropertiesExcept(panel.StandardLinks),
			UseCustomConfig: func(b *option.Builder) {
				b.AddCustomEditor(option.Descriptor{
					ID:               "scaleDistribution",
					Path:             "scaleDistribution",
					Name:             "Y axis scale",
					Category:         []string{"Heatmap"},
					DefaultValue:     map[string]any{"type": common.ScaleLinear},
					ShouldApply:      func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
					Process:          common.ScaleDistributionProcessor,
					HideFromDefaults: true,
				})
				b.Extend(common.HideFrom())
			},
		}).
		SetPanelOptions(
			calculationOptions,
			yAxisOptions,
			colorOptions,
			cellOptions,
			tooltipOptions,
			func(b *option.Builder) {
				b.
					AddBooleanSwitch(option.Descriptor{
						Path:         "legend.show",
						Name:         "Show legend",
						Category:     []string{"Legend"},
						DefaultValue: true,
					}).
					AddColorPicker(option.Descriptor{
						Path:         "exemplars.color",
						Name:         "Color",
						Category:     []string{"Exemplars"},
						DefaultValue: "rgba(255,0,255,0.7)",
					})
			},
		).
		Build()
}

func calculating(c option.Config) bool {
	return c.Bool("calculate")
}

func notCalculating(c option.Config) bool {
	return !c.Bool("calculate")
}

// calculationOptions registers the bucket options used when the heatmap is
// calculated from raw data
func calculationOptions(b *option.Builder) {
	category := []string{"Heatmap"}
	bucketModes := []option.SelectableValue{
		{Value: "size", Label: "Size"},
		{Value: "count", Label: "Count"},
	}

	b.AddRadio(option.Descriptor{
		Path:         "calculate",
		Name:         "Calculate from data",
		Category:     category,
		DefaultValue: false,
		Settings: option.SelectSettings{Options: []option.SelectableValue{
			{Value: true, Label: "Yes"},
			{Value: false, Label: "No"},
		}},
		Process: option.BooleanProcessor,
	})

	for _, axis := range []struct{ key, name string }{{"xBuckets", "X Bucket"}, {"yBuckets", "Y Bucket"}} {
		path := "calculation." + axis.key
		b.
			AddRadio(option.Descriptor{
				Path:     path + ".mode",
				Name:     axis.name,
				Category: category,
				Settings: option.SelectSettings{Options: bucketModes},
				ShowIf:   calculating,
			}).
			AddTextInput(option.Descriptor{
				Path:     path + ".value",
				Name:     axis.name + " value",
				Category: category,
				Settings: option.TextSettings{Placeholder: "Auto"},
				ShowIf:   calculating,
			})
	}

	b.AddCustomEditor(option.Descriptor{
		Path:         "calculation.yBuckets.scale",
		Name:         "Y Bucket scale",
		Category:     category,
		DefaultValue: map[string]any{"type": common.ScaleLinear},
		Process:      common.ScaleDistributionProcessor,
		ShowIf:       calculating,
	})
}

func yAxisOptions(b *option.Builder) {
	category := []string{"Y Axis"}
	b.
		AddRadio(option.Descriptor{
			Path:         "yAxis.axisPlacement",
			Name:         "Placement",
			Category:     category,
			DefaultValue: common.AxisPlacementLeft,
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: common.AxisPlacementLeft, Label: "Left"},
				{Value: common.AxisPlacementRight, Label: "Right"},
				{Value: common.AxisPlacementHidden, Label: "Hidden"},
			}},
		}).
		AddUnitPicker(option.Descriptor{
			Path:     "yAxis.unit",
			Name:     "Unit",
			Category: category,
			Settings: option.UnitSettings{IsClearable: true},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "yAxis.decimals",
			Name:     "Decimals",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto"},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "yAxis.min",
			Name:     "Min value",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto"},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "yAxis.max",
			Name:     "Max value",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto"},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "yAxis.axisWidth",
			Name:     "Axis width",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto", Min: ptr.Float64(5)},
		}).
		AddTextInput(option.Descriptor{
			Path:     "yAxis.axisLabel",
			Name:     "Axis label",
			Category: category,
			Settings: option.TextSettings{Placeholder: "Auto"},
		}).
		AddRadio(option.Descriptor{
			Path:         "rowsFrame.layout",
			Name:         "Tick alignment",
			Category:     category,
			DefaultValue: "auto",
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: "auto", Label: "Auto"},
				{Value: "le", Label: "Top (LE)"},
				{Value: "unknown", Label: "Middle"},
				{Value: "ge", Label: "Bottom (GE)"},
			}},
			ShowIf: notCalculating,
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "yAxis.reverse",
			Name:         "Reverse",
			Category:     category,
			DefaultValue: false,
		})
}

func colorOptions(b *option.Builder) {
	category := []string{"Colors"}
	opacity := func(c option.Config) bool { return c.String("color.mode") == ColorModeOpacity }

	b.
		AddRadio(option.Descriptor{
			Path:         "color.mode",
			Name:         "Mode",
			Category:     category,
			DefaultValue: ColorModeScheme,
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: ColorModeScheme, Label: "Scheme"},
				{Value: ColorModeOpacity, Label: "Opacity"},
			}},
		}).
		AddColorPicker(option.Descriptor{
			Path:         "color.fill",
			Name:         "Color",
			Category:     category,
			DefaultValue: "dark-orange",
			ShowIf:       opacity,
		}).
		AddRadio(option.Descriptor{
			Path:         "color.scale",
			Name:         "Scale",
			Category:     category,
			DefaultValue: ColorScaleExponential,
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: ColorScaleExponential, Label: "Exponential"},
				{Value: ColorScaleLinear, Label: "Linear"},
			}},
			ShowIf: opacity,
		}).
		AddSliderInput(option.Descriptor{
			Path:         "color.exponent",
			Name:         "Exponent",
			Category:     category,
			DefaultValue: 0.5,
			Settings:     option.SliderSettings{Min: 0.1, Max: 2, Step: 0.1},
			ShowIf: func(c option.Config) bool {
				return opacity(c) && c.String("color.scale") == ColorScaleExponential
			},
		}).
		AddSelect(option.Descriptor{
			Path:         "color.scheme",
			Name:         "Scheme",
			Category:     category,
			DefaultValue: "Oranges",
			Settings:     option.SelectSettings{Options: colorSchemes()},
			ShowIf:       func(c option.Config) bool { return !opacity(c) },
		}).
		AddSliderInput(option.Descriptor{
			Path:         "color.steps",
			Name:         "Steps",
			Category:     category,
			DefaultValue: 64,
			Settings:     option.SliderSettings{Min: 2, Max: 128, Step: 1},
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "color.reverse",
			Name:         "Reverse",
			Category:     category,
			DefaultValue: false,
		}).
		AddNumberInput(option.Descriptor{
			Path:     "color.min",
			Name:     "Start color scheme from value",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto (min)"},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "color.max",
			Name:     "End color scheme from value",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto (max)"},
		})
}

func cellOptions(b *option.Builder) {
	category := []string{"Cell display"}
	b.
		AddTextInput(option.Descriptor{
			Path:     "rowsFrame.value",
			Name:     "Value name",
			Category: category,
			Settings: option.TextSettings{Placeholder: "Value"},
			ShowIf:   notCalculating,
		}).
		AddUnitPicker(option.Descriptor{
			Path:     "cellValues.unit",
			Name:     "Unit",
			Category: category,
			Settings: option.UnitSettings{IsClearable: true},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "cellValues.decimals",
			Name:     "Decimals",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "Auto"},
		}).
		AddSliderInput(option.Descriptor{
			Path:         "cellGap",
			Name:         "Cell gap",
			Category:     category,
			DefaultValue: 1,
			Settings:     option.SliderSettings{Min: 0, Max: 25},
		}).
		AddNumberInput(option.Descriptor{
			Path:         "filterValues.le",
			Name:         "Hide cells with values <=",
			Category:     category,
			DefaultValue: 1e-9,
			Settings:     option.NumberSettings{Placeholder: "None"},
		}).
		AddNumberInput(option.Descriptor{
			Path:     "filterValues.ge",
			Name:     "Hide cells with values >=",
			Category: category,
			Settings: option.NumberSettings{Placeholder: "None"},
		})
}

func tooltipOptions(b *option.Builder) {
	category := []string{"Tooltip"}
	single := func(c option.Config) bool { return c.String("tooltip.mode") == common.TooltipSingle }

	b.
		AddRadio(option.Descriptor{
			Path:         "tooltip.mode",
			Name:         "Tooltip mode",
			Category:     category,
			DefaultValue: common.TooltipSingle,
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: common.TooltipSingle, Label: "Single"},
				{Value: common.TooltipMulti, Label: "All"},
				{Value: common.TooltipNone, Label: "Hidden"},
			}},
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "tooltip.yHistogram",
			Name:         "Show histogram (Y axis)",
			Category:     category,
			DefaultValue: false,
			ShowIf:       single,
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "tooltip.showColorScale",
			Name:         "Show color scale",
			Category:     category,
			DefaultValue: false,
			ShowIf:       single,
		}).
		AddNumberInput(option.Descriptor{
			Path:     "tooltip.maxWidth",
			Name:     "Max width",
			Category: category,
			Settings: option.NumberSettings{Integer: true},
			ShowIf:   func(c option.Config) bool { return c.String("tooltip.mode") != common.TooltipNone },
		}).
		AddNumberInput(option.Descriptor{
			Path:     "tooltip.maxHeight",
			Name:     "Max height",
			Category: category,
			Settings: option.NumberSettings{Integer: true},
			ShowIf:   func(c option.Config) bool { return c.String("tooltip.mode") == common.TooltipMulti },
		})
}

func colorSchemes() []option.SelectableValue {
	names := []string{
		"Blues", "Greens", "Greys", "Oranges", "Purples", "Reds",
		"BuGn", "BuPu", "GnBu", "OrRd", "PuBu", "PuBuGn", "PuRd", "RdPu",
		"YlGn", "YlGnBu", "YlOrBr", "YlOrRd",
		"Turbo", "Cividis", "Viridis", "Magma", "Inferno", "Plasma",
		"Warm", "Cool", "CubehelixDefault", "Rainbow", "Sinebow",
		"Spectral", "RdYlGn", "RdYlBu", "RdBu", "PiYG", "PRGn", "BrBG", "PuOr",
	}
	result := make([]option.SelectableValue, len(names))
	for i, name := range names {
		result[i] = option.SelectableValue{Value: name, Label: name}
	}
	return result
}
