package table

import (
	"fmt"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// Cell display modes
const (
	CellAuto            = "auto"
	CellColorText       = "color-text"
	CellColorBackground = "color-background"
	CellGauge           = "gauge"
	CellJSONView        = "json-view"
	CellImage           = "image"
	CellDataLinks       = "data-links"
	CellSparkline       = "sparkline"
)

var cellTypes = []string{
	CellAuto, CellColorText, CellColorBackground, CellGauge,
	CellJSONView, CellImage, CellDataLinks, CellSparkline,
}

// enumerated sub-options per cell type
var cellEnums = map[string]map[string][]string{
	CellColorBackground: {
		"mode": {"basic", "gradient"},
	},
	CellGauge: {
		"mode":             {"basic", "gradient", "lcd"},
		"valueDisplayMode": {"color", "text", "hidden"},
	},
}

var cellSwitches = map[string][]string{
	CellAuto:            {"wrapText"},
	CellColorText:       {"wrapText"},
	CellColorBackground: {"applyToRow", "wrapText"},
}

// CellOptionsProcessor validates a cell options object. Its "type" selects
// the cell renderer and decides which sub-options are accepted.
func CellOptionsProcessor(_, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, goerr.Wrap(option.ErrInvalidValue, "cell options must be an object",
			goerr.V(option.ValueTypeKey, fmt.Sprintf("%T", value)))
	}
	cfg := option.Config(m)

	typ := cfg.String("type")
	if !slices.Contains(cellTypes, typ) {
		return nil, goerr.Wrap(option.ErrInvalidValue, "unknown cell type", goerr.V(option.ValueKey, typ))
	}

	result := option.Config{"type": typ}
	for key, allowed := range cellEnums[typ] {
		v, exists := cfg.Get(key)
		if !exists {
			continue
		}
		s, _ := v.(string)
		if !slices.Contains(allowed, s) {
			return nil, goerr.Wrap(option.ErrInvalidValue, "invalid cell option",
				goerr.V("key", key), goerr.V(option.ValueKey, v))
		}
		result[key] = s
	}
	for _, key := range cellSwitches[typ] {
		v, exists := cfg.Get(key)
		if !exists {
			continue
		}
		b, err := option.BooleanProcessor(nil, v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid cell option", goerr.V("key", key))
		}
		result[key] = b
	}
	return map[string]any(result), nil
}
