// Package timeseries defines the time series panel plugin
package timeseries

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/common"
)

// ID is the plugin ID of the time series panel
const ID types.PluginID = "timeseries"

// Draw styles
const (
	DrawLine   = "line"
	DrawBars   = "bars"
	DrawPoints = "points"
)

// GraphDefaults are the defaults of the graph field options
type GraphDefaults struct {
	DrawStyle         string
	LineInterpolation string
	LineWidth         float64
	FillOpacity       float64
	GradientMode      string
	BarAlignment      int
	BarWidthFactor    float64
	Stacking          common.StackingDefaults
	Axis              common.AxisDefaults
}

// DefaultGraphConfig is the graph configuration of a new time series panel
var DefaultGraphConfig = GraphDefaults{
	DrawStyle:         DrawLine,
	LineInterpolation: "linear",
	LineWidth:         1,
	FillOpacity:       0,
	GradientMode:      "none",
	BarAlignment:      0,
	BarWidthFactor:    0.6,
	Stacking:          common.StackingDefaults{Mode: common.StackingNone, Group: "A"},
}

var categoryStyles = []string{"Graph styles"}

// GraphFieldConfig returns the field configuration shared by graph-like
// panels. isTime is passed to the null handling editors.
func GraphFieldConfig(cfg GraphDefaults, isTime bool) panel.FieldConfigOptions {
	return panel.FieldConfigOptions{
		StandardOptions: map[panel.StandardProperty]panel.StandardOverride{
			panel.StandardColor: {
				Settings: option.FieldColorSettings{
					ByValueSupport:       true,
					BySeriesSupport:      true,
					PreferThresholdsMode: false,
				},
				DefaultValue: map[string]any{"mode": "palette-classic"},
			},
		},
		UseCustomConfig: func(b *option.Builder) {
			graphStyles(b, cfg, isTime)
			b.Extend(common.StackingConfig(cfg.Stacking, categoryStyles))
			b.AddSelect(option.Descriptor{
				Path:     "transform",
				Name:     "Transform",
				Category: categoryStyles,
				Settings: option.SelectSettings{
					Options: []option.SelectableValue{
						{Value: "constant", Label: "Constant", Description: "The first value will be shown as a constant line"},
						{Value: "negative-Y", Label: "Negative Y", Description: "Flip the results to negative values on the y axis"},
					},
					IsClearable: true,
				},
				HideFromDefaults: true,
			})
			b.Extend(
				common.AxisConfig(cfg.Axis, false),
				common.HideFrom(),
			)
			b.AddCustomEditor(option.Descriptor{
				ID:           "thresholdsStyle",
				Path:         "thresholdsStyle",
				Name:         "Show thresholds",
				Category:     []string{"Thresholds"},
				DefaultValue: map[string]any{"mode": "off"},
				Settings:     option.SelectSettings{Options: thresholdsDisplayModes},
				Process:      option.IdentityProcessor,
			})
		},
	}
}

func graphStyles(b *option.Builder, cfg GraphDefaults, isTime bool) {
	isLine := func(c option.Config) bool { return c.String("drawStyle") == DrawLine }
	isBars := func(c option.Config) bool { return c.String("drawStyle") == DrawBars }
	notPoints := func(c option.Config) bool { return c.String("drawStyle") != DrawPoints }
	notTime := func(f *option.Field) bool { return f.Type != types.FieldTypeTime }

	b.
		AddRadio(option.Descriptor{
			Path:         "drawStyle",
			Name:         "Style",
			Category:     categoryStyles,
			DefaultValue: cfg.DrawStyle,
			Settings:     option.SelectSettings{Options: drawStyles},
		}).
		AddRadio(option.Descriptor{
			Path:         "lineInterpolation",
			Name:         "Line interpolation",
			Category:     categoryStyles,
			DefaultValue: cfg.LineInterpolation,
			Settings:     option.SelectSettings{Options: lineInterpolations},
			ShowIf:       isLine,
		}).
		AddRadio(option.Descriptor{
			Path:         "barAlignment",
			Name:         "Bar alignment",
			Category:     categoryStyles,
			DefaultValue: cfg.BarAlignment,
			Settings:     option.SelectSettings{Options: barAlignments},
			Process:      option.NumberProcessor,
			ShowIf:       isBars,
		}).
		AddSliderInput(option.Descriptor{
			Path:         "barWidthFactor",
			Name:         "Bar width factor",
			Category:     categoryStyles,
			DefaultValue: cfg.BarWidthFactor,
			Settings:     option.SliderSettings{Min: 0.1, Max: 1.0, Step: 0.1, AriaLabel: "Bar width factor"},
			ShowIf:       isBars,
		}).
		AddSliderInput(option.Descriptor{
			Path:         "lineWidth",
			Name:         "Line width",
			Category:     categoryStyles,
			DefaultValue: cfg.LineWidth,
			Settings:     option.SliderSettings{Min: 0, Max: 10, Step: 1, AriaLabel: "Line width"},
			ShowIf:       notPoints,
		}).
		AddSliderInput(option.Descriptor{
			Path:         "fillOpacity",
			Name:         "Fill opacity",
			Category:     categoryStyles,
			DefaultValue: cfg.FillOpacity,
			Settings:     option.SliderSettings{Min: 0, Max: 100, Step: 1, AriaLabel: "Fill opacity"},
			ShowIf:       notPoints,
		}).
		AddRadio(option.Descriptor{
			Path:         "gradientMode",
			Name:         "Gradient mode",
			Category:     categoryStyles,
			DefaultValue: gradientModes[0].Value,
			Settings:     option.SelectSettings{Options: gradientModes},
			ShowIf:       notPoints,
		}).
		AddFieldNamePicker(option.Descriptor{
			Path:             "fillBelowTo",
			Name:             "Fill below to",
			Category:         categoryStyles,
			HideFromDefaults: true,
			Settings: option.FieldNameSettings{
				Filter: func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
			},
		}).
		AddCustomEditor(option.Descriptor{
			ID:          "lineStyle",
			Path:        "lineStyle",
			Name:        "Line style",
			Category:    categoryStyles,
			ShowIf:      isLine,
			Process:     LineStyleProcessor,
			ShouldApply: func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
		}).
		AddCustomEditor(option.Descriptor{
			ID:           "spanNulls",
			Path:         "spanNulls",
			Name:         "Connect null values",
			Category:     categoryStyles,
			DefaultValue: false,
			ShowIf:       isLine,
			ShouldApply:  notTime,
			Process:      option.IdentityProcessor,
			Settings:     NullEditorSettings{IsTime: isTime},
		}).
		AddCustomEditor(option.Descriptor{
			ID:           "insertNulls",
			Path:         "insertNulls",
			Name:         "Disconnect values",
			Category:     categoryStyles,
			DefaultValue: false,
			ShowIf:       isLine,
			ShouldApply:  notTime,
			Process:      option.IdentityProcessor,
			Settings:     NullEditorSettings{IsTime: isTime},
		}).
		AddRadio(option.Descriptor{
			Path:         "showPoints",
			Name:         "Show points",
			Category:     categoryStyles,
			DefaultValue: showPoints[0].Value,
			Settings:     option.SelectSettings{Options: showPoints},
			ShowIf:       notPoints,
		}).
		AddSliderInput(option.Descriptor{
			Path:         "pointSize",
			Name:         "Point size",
			Category:     categoryStyles,
			DefaultValue: 5,
			Settings:     option.SliderSettings{Min: 1, Max: 40, Step: 1, AriaLabel: "Point size"},
			ShowIf: func(c option.Config) bool {
				return c.String("showPoints") != "never" || c.String("drawStyle") == DrawPoints
			},
		})
}

// NullEditorSettings configures the null handling editors
type NullEditorSettings struct {
	IsTime bool `json:"is_time"`
}

// New builds the time series plugin
func New() (*panel.Plugin, error) {
	return panel.NewPlugin(ID, "Time series").
		Describe("Time based line, area and bar charts").
		UseFieldConfig(GraphFieldConfig(DefaultGraphConfig, true)).
		SetPanelOptions(
			common.TooltipOptions(false, true, common.TooltipDefaults{}),
			common.LegendOptions(true, true),
			func(b *option.Builder) {
				b.AddOption(option.Descriptor{
					ID:       "timezone",
					Path:     "timezone",
					Name:     "Time zone",
					Category: []string{"Axis"},
					Editor:   types.EditorTimeZone,
				})
			},
		).
		Build()
}
