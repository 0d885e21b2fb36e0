package declarative

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/panel/common"
	"github.com/secmon-lab/vizopts/pkg/panel/table"
	"github.com/secmon-lab/vizopts/pkg/panel/timeseries"
)

var processors = map[string]option.OverrideProcessor{
	"identity":           option.IdentityProcessor,
	"number":             option.NumberProcessor,
	"string":             option.StringProcessor,
	"boolean":            option.BooleanProcessor,
	"display-name":       option.DisplayNameProcessor,
	"append":             option.AppendProcessor,
	"value-mappings":     option.ValueMappingsProcessor,
	"thresholds":         option.ThresholdsProcessor,
	"scale-distribution": common.ScaleDistributionProcessor,
	"line-style":         timeseries.LineStyleProcessor,
	"cell-options":       table.CellOptionsProcessor,
}

// ProcessorNames returns the names usable in the `process` key
func ProcessorNames() []string {
	names := make([]string, 0, len(processors))
	for name := range processors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupProcessor resolves a processor name
func LookupProcessor(name string) (option.OverrideProcessor, error) {
	p, ok := processors[name]
	if !ok {
		return nil, goerr.Wrap(option.ErrConfig, "unknown processor", goerr.V("process", name))
	}
	return p, nil
}
