package common

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// TooltipDefaults overrides the default tooltip mode and sort order
type TooltipDefaults struct {
	Mode string
	Sort string
}

// TooltipOptions registers the tooltip panel options. singleOnly drops the
// "all series" mode and setProximity adds the hover proximity option.
func TooltipOptions(singleOnly, setProximity bool, defaults TooltipDefaults) option.Contributor {
	category := []string{"Tooltip"}

	modes := []option.SelectableValue{
		{Value: TooltipSingle, Label: "Single"},
		{Value: TooltipMulti, Label: "All"},
		{Value: TooltipNone, Label: "Hidden"},
	}
	if singleOnly {
		modes = []option.SelectableValue{
			{Value: TooltipSingle, Label: "Single"},
			{Value: TooltipNone, Label: "Hidden"},
		}
	}

	mode := defaults.Mode
	if mode == "" {
		mode = TooltipSingle
	}
	sort := defaults.Sort
	if sort == "" {
		sort = SortNone
	}

	visible := func(c option.Config) bool { return c.String("tooltip.mode") != TooltipNone }
	multi := func(c option.Config) bool { return c.String("tooltip.mode") == TooltipMulti }

	return func(b *option.Builder) {
		b.
			AddRadio(option.Descriptor{
				Path:         "tooltip.mode",
				Name:         "Tooltip mode",
				Category:     category,
				DefaultValue: mode,
				Settings:     option.SelectSettings{Options: modes},
			}).
			AddRadio(option.Descriptor{
				Path:         "tooltip.sort",
				Name:         "Values sort order",
				Category:     category,
				DefaultValue: sort,
				Settings: option.SelectSettings{Options: []option.SelectableValue{
					{Value: SortNone, Label: "None"},
					{Value: SortAscending, Label: "Ascending"},
					{Value: SortDescending, Label: "Descending"},
				}},
				ShowIf: multi,
			})

		if setProximity {
			b.AddNumberInput(option.Descriptor{
				Path:        "tooltip.hoverProximity",
				Name:        "Hover proximity",
				Description: "How close the cursor must be to a point to trigger the tooltip, in pixels",
				Category:    category,
				Settings:    option.NumberSettings{Integer: true},
				ShowIf:      visible,
			})
		}

		b.
			AddNumberInput(option.Descriptor{
				Path:     "tooltip.maxWidth",
				Name:     "Max width",
				Category: category,
				Settings: option.NumberSettings{Integer: true},
				ShowIf:   visible,
			}).
			AddNumberInput(option.Descriptor{
				Path:     "tooltip.maxHeight",
				Name:     "Max height",
				Category: category,
				Settings: option.NumberSettings{Integer: true},
				ShowIf:   multi,
			})
	}
}
