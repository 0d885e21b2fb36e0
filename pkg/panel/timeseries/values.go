package timeseries

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

var drawStyles = []option.SelectableValue{
	{Value: DrawLine, Label: "Lines"},
	{Value: DrawBars, Label: "Bars"},
	{Value: DrawPoints, Label: "Points"},
}

var lineInterpolations = []option.SelectableValue{
	{Value: "linear", Description: "Linear"},
	{Value: "smooth", Description: "Smooth"},
	{Value: "stepBefore", Description: "Step before"},
	{Value: "stepAfter", Description: "Step after"},
}

var barAlignments = []option.SelectableValue{
	{Value: -1, Description: "Before"},
	{Value: 0, Description: "Center"},
	{Value: 1, Description: "After"},
}

var showPoints = []option.SelectableValue{
	{Value: "auto", Label: "Auto", Description: "Show points when the density is low"},
	{Value: "always", Label: "Always"},
	{Value: "never", Label: "Never"},
}

var gradientModes = []option.SelectableValue{
	{Value: "none", Label: "None"},
	{Value: "opacity", Label: "Opacity", Description: "Enable fill opacity gradient"},
	{Value: "hue", Label: "Hue", Description: "Small color hue gradient"},
	{Value: "scheme", Label: "Scheme", Description: "Use color scheme to define gradient"},
}

var thresholdsDisplayModes = []option.SelectableValue{
	{Value: "off", Label: "Off"},
	{Value: "line", Label: "As lines"},
	{Value: "line+area", Label: "As lines and filled regions"},
	{Value: "dashed", Label: "As lines (dashed)"},
	{Value: "dashed+area", Label: "As filled regions and lines (dashed)"},
	{Value: "area", Label: "As filled regions"},
}

// LineStyleProcessor validates a line style object ({fill, dash}).
// Dash segments are only kept for dashed and dotted lines.
func LineStyleProcessor(_, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, goerr.Wrap(option.ErrInvalidValue, "line style must be an object",
			goerr.V(option.ValueTypeKey, fmt.Sprintf("%T", value)))
	}
	cfg := option.Config(m)

	fill := cfg.String("fill")
	switch fill {
	case "", "solid":
		return map[string]any{"fill": "solid"}, nil
	case "dash", "dot":
	default:
		return nil, goerr.Wrap(option.ErrInvalidValue, "unknown line fill", goerr.V(option.ValueKey, fill))
	}

	result := map[string]any{"fill": fill}
	if dash, exists := cfg.Get("dash"); exists {
		items, ok := dash.([]any)
		if !ok {
			return nil, goerr.Wrap(option.ErrInvalidValue, "line dash must be a list of numbers")
		}
		segments := make([]any, 0, len(items))
		for _, item := range items {
			v, err := option.NumberProcessor(nil, item)
			if err != nil || v == nil {
				return nil, goerr.Wrap(option.ErrInvalidValue, "line dash must be a list of numbers",
					goerr.V(option.ValueKey, item))
			}
			segments = append(segments, v)
		}
		result["dash"] = segments
	}
	return result, nil
}
