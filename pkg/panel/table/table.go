// Package table defines the table panel plugin
package table

import (
	"slices"

	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"go.ytsaurus.tech/library/go/ptr"
)

// ID is the plugin ID of the table panel
const ID types.PluginID = "table"

var (
	cellCategory   = []string{"Cell options"}
	footerCategory = []string{"Table footer"}
)

// New builds the table plugin
func New() (*panel.Plugin, error) {
	return panel.NewPlugin(ID, "Table").
		Describe("Tabular view of fields and values").
		UseFieldConfig(panel.FieldConfigOptions{
			UseCustomConfig: customConfig,
		}).
		SetPanelOptions(panelOptions).
		Build()
}

func customConfig(b *option.Builder) {
	b.
		AddNumberInput(option.Descriptor{
			Path:         "minWidth",
			Name:         "Minimum column width",
			Description:  "The minimum width for column auto resizing",
			DefaultValue: 150,
			Settings: option.NumberSettings{
				Placeholder: "150",
				Min:         ptr.Float64(50),
				Max:         ptr.Float64(500),
			},
		}).
		AddNumberInput(option.Descriptor{
			Path: "width",
			Name: "Column width",
			Settings: option.NumberSettings{
				Placeholder: "auto",
				Min:         ptr.Float64(20),
				Max:         ptr.Float64(300),
			},
		}).
		AddRadio(option.Descriptor{
			Path:         "align",
			Name:         "Column alignment",
			DefaultValue: "auto",
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: "auto", Label: "Auto"},
				{Value: "left", Label: "Left"},
				{Value: "center", Label: "Center"},
				{Value: "right", Label: "Right"},
			}},
		}).
		AddCustomEditor(option.Descriptor{
			ID:           "cellOptions",
			Path:         "cellOptions",
			Name:         "Cell type",
			Category:     cellCategory,
			DefaultValue: map[string]any{"type": CellAuto},
			Process:      CellOptionsProcessor,
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "inspect",
			Name:         "Cell value inspect",
			Description:  "Enable cell value inspection in a modal window",
			Category:     cellCategory,
			DefaultValue: false,
			ShowIf: func(c option.Config) bool {
				return slices.Contains(
					[]string{CellAuto, CellJSONView, CellColorText, CellColorBackground},
					c.String("cellOptions.type"))
			},
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "filterable",
			Name:         "Column filter",
			Description:  "Enables/disables field filters in table",
			DefaultValue: false,
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:             "hidden",
			Name:             "Hide in table",
			HideFromDefaults: true,
		})
}

func panelOptions(b *option.Builder) {
	footerShown := func(c option.Config) bool { return c.Bool("footer.show") }

	b.
		AddBooleanSwitch(option.Descriptor{
			Path:         "showHeader",
			Name:         "Show table header",
			DefaultValue: true,
		}).
		AddRadio(option.Descriptor{
			Path:         "cellHeight",
			Name:         "Cell height",
			DefaultValue: "sm",
			Settings: option.SelectSettings{Options: []option.SelectableValue{
				{Value: "sm", Label: "Small"},
				{Value: "md", Label: "Medium"},
				{Value: "lg", Label: "Large"},
			}},
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "footer.show",
			Name:         "Show table footer",
			Category:     footerCategory,
			DefaultValue: false,
		}).
		AddStatsPicker(option.Descriptor{
			Path:         "footer.reducer",
			Name:         "Calculation",
			Description:  "Choose a reducer function / calculation",
			Category:     footerCategory,
			DefaultValue: []any{"sum"},
			Settings:     option.StatsPickerSettings{},
			ShowIf:       footerShown,
		}).
		AddBooleanSwitch(option.Descriptor{
			Path:         "footer.countRows",
			Name:         "Count rows",
			Description:  "Display a single count for all data rows",
			Category:     footerCategory,
			DefaultValue: false,
			ShowIf: func(c option.Config) bool {
				reducer := c.Strings("footer.reducer")
				return len(reducer) == 1 && reducer[0] == "count"
			},
		}).
		AddMultiSelect(option.Descriptor{
			Path:        "footer.fields",
			Name:        "Fields",
			Description: "Select the fields that should be calculated",
			Category:    footerCategory,
			Settings: option.SelectSettings{
				Placeholder:  "All Numeric Fields",
				FieldOptions: numericFields,
			},
			ShowIf: func(c option.Config) bool {
				return c.Bool("footer.show") && !c.Bool("footer.countRows")
			},
		}).
		AddCustomEditor(option.Descriptor{
			ID:      "footer.enablePagination",
			Path:    "footer.enablePagination",
			Name:    "Enable pagination",
			Editor:  types.EditorBoolean,
			Process: option.BooleanProcessor,
		})
}

func numericFields(fields []*option.Field) []option.SelectableValue {
	var result []option.SelectableValue
	for _, f := range fields {
		if f != nil && f.Type == types.FieldTypeNumber {
			result = append(result, option.SelectableValue{Value: f.Name, Label: f.Title()})
		}
	}
	return result
}
