package common

import (
	"regexp"

	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"go.ytsaurus.tech/library/go/ptr"
)

// Reducer used when a single value is calculated per field
const ReduceLastNotNull = "lastNotNull"

// Layout orientations
const (
	OrientationAuto       = "auto"
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// ReduceOptions registers the options choosing between one calculated
// value per field and every row. includeFieldMatcher adds the field filter.
func ReduceOptions(includeFieldMatcher bool) option.Contributor {
	category := []string{"Value options"}

	return func(b *option.Builder) {
		b.
			AddRadio(option.Descriptor{
				Path:         "reduceOptions.values",
				Name:         "Show",
				Description:  "Calculate a single value per column or series or show each row",
				Category:     category,
				DefaultValue: false,
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: false, Label: "Calculate"},
					{Value: true, Label: "All values"},
				}},
			}).
			AddNumberInput(option.Descriptor{
				Path:        "reduceOptions.limit",
				Name:        "Limit",
				Description: "Max number of rows to display",
				Category:    category,
				Settings: option.NumberSettings{
					Placeholder: "25",
					Integer:     true,
					Min:         ptr.Float64(1),
					Max:         ptr.Float64(5000),
				},
				ShowIf: func(c option.Config) bool {
					v, ok := c.Get("reduceOptions.values")
					return ok && v == true
				},
			}).
			AddStatsPicker(option.Descriptor{
				ID:           "reduceOptions.calcs",
				Path:         "reduceOptions.calcs",
				Name:         "Calculation",
				Description:  "Choose a reducer function / calculation",
				Category:     category,
				DefaultValue: []any{ReduceLastNotNull},
				Settings:     option.StatsPickerSettings{DefaultStat: ReduceLastNotNull},
				ShowIf: func(c option.Config) bool {
					v, ok := c.Get("reduceOptions.values")
					return ok && v == false
				},
			})

		if includeFieldMatcher {
			b.AddSelect(option.Descriptor{
				Path:         "reduceOptions.fields",
				Name:         "Fields",
				Description:  "Select the fields that should be included in the panel",
				Category:     category,
				DefaultValue: "",
				Settings: option.SelectSettings{
					AllowCustomValue: true,
					Options: []option.SelectableValue{
						{Value: "", Label: "Numeric fields"},
						{Value: "/.*/", Label: "All fields"},
					},
					FieldOptions: fieldPatterns,
				},
			})
		}
	}
}

// fieldPatterns offers an exact name pattern per field
func fieldPatterns(fields []*option.Field) []option.SelectableValue {
	result := make([]option.SelectableValue, 0, len(fields))
	for _, f := range fields {
		name := f.Title()
		result = append(result, option.SelectableValue{
			Value: "/^" + regexp.QuoteMeta(name) + "$/",
			Label: name,
		})
	}
	return result
}

// Orientation registers the layout orientation option
func Orientation(category []string) option.Contributor {
	return func(b *option.Builder) {
		b.AddRadio(option.Descriptor{
			Path:         "orientation",
			Name:         "Orientation",
			Description:  "Layout orientation",
			Category:     category,
			DefaultValue: OrientationAuto,
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: OrientationAuto, Label: "Auto"},
				{Value: OrientationHorizontal, Label: "Horizontal"},
				{Value: OrientationVertical, Label: "Vertical"},
			}},
		})
	}
}
