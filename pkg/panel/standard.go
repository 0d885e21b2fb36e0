package panel

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"go.ytsaurus.tech/library/go/ptr"
)

// StandardProperty names a field option shared by every plugin
type StandardProperty string

const (
	StandardUnit        StandardProperty = "unit"
	StandardMin         StandardProperty = "min"
	StandardMax         StandardProperty = "max"
	StandardFieldMinMax StandardProperty = "fieldMinMax"
	StandardDecimals    StandardProperty = "decimals"
	StandardDisplayName StandardProperty = "displayName"
	StandardColor       StandardProperty = "color"
	StandardNoValue     StandardProperty = "noValue"
	StandardLinks       StandardProperty = "links"
	StandardActions     StandardProperty = "actions"
	StandardMappings    StandardProperty = "mappings"
	StandardThresholds  StandardProperty = "thresholds"
	StandardFilterable  StandardProperty = "filterable"
)

// AllStandardProperties returns the standard properties in pane order
func AllStandardProperties() []StandardProperty {
	return []StandardProperty{
		StandardUnit,
		StandardMin,
		StandardMax,
		StandardFieldMinMax,
		StandardDecimals,
		StandardDisplayName,
		StandardColor,
		StandardNoValue,
		StandardLinks,
		StandardActions,
		StandardMappings,
		StandardThresholds,
		StandardFilterable,
	}
}

// StandardOverride replaces the default value or settings of one standard
// property for a plugin. Nil fields keep the standard definition.
type StandardOverride struct {
	DefaultValue any
	Settings     any
}

var (
	standardCategory   = []string{"Standard options"}
	linksCategory      = []string{"Data links and actions"}
	mappingsCategory   = []string{"Value mappings"}
	thresholdsCategory = []string{"Thresholds"}
)

func isNumeric(f *option.Field) bool {
	return f.Type == types.FieldTypeNumber
}

func isNotTime(f *option.Field) bool {
	return f.Type != types.FieldTypeTime
}

func standardDescriptors() map[StandardProperty]option.Descriptor {
	return map[StandardProperty]option.Descriptor{
		StandardUnit: {
			Path:     "unit",
			Name:     "Unit",
			Category: standardCategory,
			Editor:   types.EditorUnit,
			Settings: option.UnitSettings{Placeholder: "none", IsClearable: true},
		},
		StandardMin: {
			Path:        "min",
			Name:        "Min",
			Description: "Leave empty to calculate based on all values",
			Category:    standardCategory,
			Editor:      types.EditorNumber,
			Settings:    option.NumberSettings{Placeholder: "auto"},
			ShouldApply: isNumeric,
		},
		StandardMax: {
			Path:        "max",
			Name:        "Max",
			Description: "Leave empty to calculate based on all values",
			Category:    standardCategory,
			Editor:      types.EditorNumber,
			Settings:    option.NumberSettings{Placeholder: "auto"},
			ShouldApply: isNumeric,
		},
		StandardFieldMinMax: {
			Path:         "fieldMinMax",
			Name:         "Field min/max",
			Description:  "Calculate min max per field",
			Category:     standardCategory,
			Editor:       types.EditorBoolean,
			DefaultValue: false,
			ShouldApply:  isNumeric,
			ShowIf: func(c option.Config) bool {
				return !c.Has("min") || !c.Has("max")
			},
		},
		StandardDecimals: {
			Path:     "decimals",
			Name:     "Decimals",
			Category: standardCategory,
			Editor:   types.EditorNumber,
			Settings: option.NumberSettings{
				Placeholder: "auto",
				Min:         ptr.Float64(0),
				Max:         ptr.Float64(15),
				Integer:     true,
			},
			ShouldApply: isNumeric,
		},
		StandardDisplayName: {
			Path:        "displayName",
			Name:        "Display name",
			Description: "Change the field or series name",
			Category:    standardCategory,
			Editor:      types.EditorText,
			Settings:    option.TextSettings{Placeholder: "none", ExpandTemplateVars: true},
			Process:     option.DisplayNameProcessor,
		},
		StandardColor: {
			Path:         "color",
			Name:         "Color scheme",
			Category:     standardCategory,
			Editor:       types.EditorFieldColor,
			DefaultValue: map[string]any{"mode": "thresholds"},
			Settings:     option.FieldColorSettings{ByValueSupport: true, PreferThresholdsMode: true},
		},
		StandardNoValue: {
			Path:        "noValue",
			Name:        "No value",
			Description: "What to show when there is no value",
			Category:    standardCategory,
			Editor:      types.EditorText,
			Settings:    option.TextSettings{Placeholder: "-"},
		},
		StandardLinks: {
			Path:       "links",
			Name:       "Data links",
			Category:   linksCategory,
			Editor:     types.EditorLinks,
			ItemsCount: option.ListCount,
		},
		StandardActions: {
			Path:       "actions",
			Name:       "Actions",
			Category:   linksCategory,
			Editor:     types.EditorActions,
			ItemsCount: option.ListCount,
		},
		StandardMappings: {
			Path:         "mappings",
			Name:         "Value mappings",
			Description:  "Modify the display text based on input value",
			Category:     mappingsCategory,
			Editor:       types.EditorMappings,
			DefaultValue: []any{},
			ShouldApply:  isNotTime,
			ItemsCount:   option.ListCount,
		},
		StandardThresholds: {
			Path:     "thresholds",
			Name:     "Thresholds",
			Category: thresholdsCategory,
			Editor:   types.EditorThresholds,
			DefaultValue: map[string]any{
				"mode": "absolute",
				"steps": []any{
					map[string]any{"value": nil, "color": "green"},
					map[string]any{"value": 80.0, "color": "red"},
				},
			},
			ItemsCount: option.ThresholdsCount,
		},
		StandardFilterable: {
			Path:             "filterable",
			Name:             "Ad-hoc filterable",
			Category:         standardCategory,
			Editor:           types.EditorBoolean,
			HideFromDefaults: true,
		},
	}
}

// standardOptions registers the standard field options that opts does not
// disable, applying the plugin's overrides of default value and settings
func standardOptions(opts FieldConfigOptions) option.Contributor {
	return func(b *option.Builder) {
		disabled := make(map[StandardProperty]bool, len(opts.DisableStandardOptions))
		for _, p := range opts.DisableStandardOptions {
			disabled[p] = true
		}

		defs := standardDescriptors()
		for _, p := range AllStandardProperties() {
			if disabled[p] {
				continue
			}
			d := defs[p]
			if o, ok := opts.StandardOptions[p]; ok {
				if o.DefaultValue != nil {
					d.DefaultValue = o.DefaultValue
				}
				if o.Settings != nil {
					d.Settings = o.Settings
				}
			}
			b.AddOption(d)
		}
	}
}

// AllStandardPropertiesExcept is a helper for plugins that keep only a few
// standard options
func AllStandardPropertiesExcept(keep ...StandardProperty) []StandardProperty {
	kept := make(map[StandardProperty]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}
	var result []StandardProperty
	for _, p := range AllStandardProperties() {
		if !kept[p] {
			result = append(result, p)
		}
	}
	return result
}
