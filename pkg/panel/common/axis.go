package common

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// AxisDefaults are the plugin specific defaults of the axis options
type AxisDefaults struct {
	SoftMin *float64
	SoftMax *float64
}

func axisShown(c option.Config) bool {
	return c.String("axisPlacement") != AxisPlacementHidden
}

// AxisConfig registers the axis appearance and scale options. It is meant to
// be used inside the custom field config scope; hideScale drops the scale
// distribution editor.
func AxisConfig(defaults AxisDefaults, hideScale bool) option.Contributor {
	category := []string{"Axis"}

	return func(b *option.Builder) {
		b.
			AddRadio(option.Descriptor{
				Path:         "axisPlacement",
				Name:         "Placement",
				Category:     category,
				DefaultValue: AxisPlacementAuto,
				Settings:     option.SelectSettings{Options: AxisPlacementOptions},
			}).
			AddTextInput(option.Descriptor{
				Path:         "axisLabel",
				Name:         "Label",
				Category:     category,
				DefaultValue: "",
				Settings:     option.TextSettings{Placeholder: "Optional text", ExpandTemplateVars: true},
				ShowIf:       axisShown,
				// time and string fields are x-axis fields
				ShouldApply: func(f *option.Field) bool {
					return f.Type != types.FieldTypeTime && f.Type != types.FieldTypeString
				},
			}).
			AddNumberInput(option.Descriptor{
				Path:     "axisWidth",
				Name:     "Width",
				Category: category,
				Settings: option.NumberSettings{Placeholder: "Auto"},
				ShowIf:   axisShown,
			}).
			AddRadio(option.Descriptor{
				Path:     "axisGridShow",
				Name:     "Show grid lines",
				Category: category,
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: nil, Label: "Auto"},
					{Value: true, Label: "On"},
					{Value: false, Label: "Off"},
				}},
				Process: option.BooleanProcessor,
				ShowIf:  axisShown,
			}).
			AddRadio(option.Descriptor{
				Path:         "axisColorMode",
				Name:         "Color",
				Category:     category,
				DefaultValue: "text",
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: "text", Label: "Text"},
					{Value: "series", Label: "Series"},
				}},
				ShowIf: axisShown,
			}).
			AddBooleanSwitch(option.Descriptor{
				Path:         "axisBorderShow",
				Name:         "Show border",
				Category:     category,
				DefaultValue: false,
				ShowIf:       axisShown,
			})

		if !hideScale {
			b.AddCustomEditor(option.Descriptor{
				ID:           "scaleDistribution",
				Path:         "scaleDistribution",
				Name:         "Scale",
				Category:     category,
				DefaultValue: map[string]any{"type": ScaleLinear},
				ShouldApply:  func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
				Process:      ScaleDistributionProcessor,
			})
		}

		b.
			AddBooleanSwitch(option.Descriptor{
				Path:         "axisCenteredZero",
				Name:         "Centered zero",
				Category:     category,
				DefaultValue: false,
				ShowIf: func(c option.Config) bool {
					return c.String("scaleDistribution.type") != ScaleLog
				},
			}).
			AddNumberInput(option.Descriptor{
				Path:         "axisSoftMin",
				Name:         "Soft min",
				Category:     category,
				DefaultValue: floatOrNil(defaults.SoftMin),
				Settings:     option.NumberSettings{Placeholder: "See: Standard options > Min"},
			}).
			AddNumberInput(option.Descriptor{
				Path:         "axisSoftMax",
				Name:         "Soft max",
				Category:     category,
				DefaultValue: floatOrNil(defaults.SoftMax),
				Settings:     option.NumberSettings{Placeholder: "See: Standard options > Max"},
			})
	}
}

// ScaleDistributionProcessor validates a scale distribution object
// ({type, log, linearThreshold}) and drops keys that do not apply to its type
func ScaleDistributionProcessor(_, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	cfg, ok := toConfig(value)
	if !ok {
		return nil, goerr.Wrap(option.ErrInvalidValue, "scale distribution must be an object",
			goerr.V(option.ValueTypeKey, fmt.Sprintf("%T", value)))
	}

	typ := cfg.String("type")
	switch typ {
	case "", ScaleLinear:
		return map[string]any{"type": ScaleLinear}, nil
	case ScaleOrdinal:
		return map[string]any{"type": ScaleOrdinal}, nil
	case ScaleLog, ScaleSymlog:
	default:
		return nil, goerr.Wrap(option.ErrInvalidValue, "unknown scale distribution",
			goerr.V(option.ValueKey, typ))
	}

	base := 2.0
	if v, ok := cfg.Float("log"); ok {
		base = v
	}
	if base != 2 && base != 10 {
		return nil, goerr.Wrap(option.ErrInvalidValue, "log base must be 2 or 10",
			goerr.V(option.ValueKey, base))
	}

	result := map[string]any{"type": typ, "log": base}
	if typ == ScaleSymlog {
		if v, ok := cfg.Float("linearThreshold"); ok {
			result["linearThreshold"] = v
		}
	}
	return result, nil
}

func toConfig(v any) (option.Config, bool) {
	switch m := v.(type) {
	case map[string]any:
		return option.Config(m), true
	case option.Config:
		return m, true
	default:
		return nil, false
	}
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
