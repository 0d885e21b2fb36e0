// Package declarative builds panel plugins from TOML or YAML definitions.
// Predicates are expr-lang expressions compiled once at load time.
package declarative

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/common"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a plugin definition file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by a file extension
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Definition is the file layout of a declarative plugin
type Definition struct {
	Plugin       PluginDef   `toml:"plugin" yaml:"plugin"`
	FieldOptions []OptionDef `toml:"field_options" yaml:"field_options"`
	PanelOptions []OptionDef `toml:"panel_options" yaml:"panel_options"`
}

// PluginDef holds the plugin identity
type PluginDef struct {
	ID                     string   `toml:"id" yaml:"id"`
	Name                   string   `toml:"name" yaml:"name"`
	Description            string   `toml:"description" yaml:"description"`
	DisableStandardOptions []string `toml:"disable_standard_options" yaml:"disable_standard_options"`
	// SharedPanelOptions names shared option sets registered before the
	// declared panel options
	SharedPanelOptions []string `toml:"shared_panel_options" yaml:"shared_panel_options"`
}

var sharedPanelOptions = map[string]option.Contributor{
	"reduce-options":                common.ReduceOptions(true),
	"reduce-options-without-fields": common.ReduceOptions(false),
	"orientation":                   common.Orientation(nil),
}

// OptionDef declares one option. ShowIf sees the current configuration as
// `config`; for field options that is the "custom" sub-configuration.
// ShouldApply sees the field as `field`.
type OptionDef struct {
	ID               string      `toml:"id" yaml:"id"`
	Path             string      `toml:"path" yaml:"path"`
	Name             string      `toml:"name" yaml:"name"`
	Description      string      `toml:"description" yaml:"description"`
	Editor           string      `toml:"editor" yaml:"editor"`
	Category         []string    `toml:"category" yaml:"category"`
	Default          any         `toml:"default" yaml:"default"`
	ShowIf           string      `toml:"show_if" yaml:"show_if"`
	ShouldApply      string      `toml:"should_apply" yaml:"should_apply"`
	Process          string      `toml:"process" yaml:"process"`
	HideFromDefaults bool        `toml:"hide_from_defaults" yaml:"hide_from_defaults"`
	Choices          []ChoiceDef `toml:"choices" yaml:"choices"`
	Min              *float64    `toml:"min" yaml:"min"`
	Max              *float64    `toml:"max" yaml:"max"`
	Step             *float64    `toml:"step" yaml:"step"`
	Integer          bool        `toml:"integer" yaml:"integer"`
}

// ChoiceDef is one choice of a radio or select option
type ChoiceDef struct {
	Value       any    `toml:"value" yaml:"value"`
	Label       string `toml:"label" yaml:"label"`
	Description string `toml:"description" yaml:"description"`
}

// Parse decodes a definition and builds its plugin
func Parse(data []byte, format Format) (*panel.Plugin, error) {
	var def Definition
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML plugin definition")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML plugin definition")
		}
	default:
		return nil, goerr.New("unsupported plugin definition format", goerr.V("format", format))
	}
	return def.Build()
}

// Load reads and builds the plugin defined in path
func Load(path string) (*panel.Plugin, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, goerr.New("unsupported plugin definition file", goerr.V("path", path))
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read plugin definition", goerr.V("path", path))
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load plugin definition", goerr.V("path", path))
	}
	return p, nil
}

// Build compiles the definition into a plugin
func (d *Definition) Build() (*panel.Plugin, error) {
	fieldOptions, err := compileAll(d.FieldOptions)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid field option", goerr.V(panel.PluginIDKey, d.Plugin.ID))
	}
	panelOptions, err := compileAll(d.PanelOptions)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid panel option", goerr.V(panel.PluginIDKey, d.Plugin.ID))
	}

	contributors := make([]option.Contributor, 0, len(d.Plugin.SharedPanelOptions)+1)
	for _, name := range d.Plugin.SharedPanelOptions {
		c, ok := sharedPanelOptions[name]
		if !ok {
			return nil, goerr.Wrap(option.ErrConfig, "unknown shared panel options",
				goerr.V(panel.PluginIDKey, d.Plugin.ID), goerr.V("shared", name))
		}
		contributors = append(contributors, c)
	}
	contributors = append(contributors, contributor(panelOptions))

	disabled := make([]panel.StandardProperty, 0, len(d.Plugin.DisableStandardOptions))
	for _, name := range d.Plugin.DisableStandardOptions {
		disabled = append(disabled, panel.StandardProperty(name))
	}

	return panel.NewPlugin(types.PluginID(d.Plugin.ID), d.Plugin.Name).
		Describe(d.Plugin.Description).
		UseFieldConfig(panel.FieldConfigOptions{
			DisableStandardOptions: disabled,
			UseCustomConfig:        contributor(fieldOptions),
		}).
		SetPanelOptions(contributors...).
		Build()
}

func compileAll(defs []OptionDef) ([]option.Descriptor, error) {
	result := make([]option.Descriptor, 0, len(defs))
	for i, def := range defs {
		d, err := def.compile()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to compile option",
				goerr.V(option.OptionIdxKey, i), goerr.V(option.PathKey, def.Path))
		}
		result = append(result, d)
	}
	return result, nil
}

func contributor(descriptors []option.Descriptor) option.Contributor {
	return func(b *option.Builder) {
		for _, d := range descriptors {
			b.AddOption(d)
		}
	}
}

func (def OptionDef) compile() (option.Descriptor, error) {
	kind, err := types.ParseEditorKind(def.Editor)
	if err != nil {
		return option.Descriptor{}, goerr.Wrap(option.ErrConfig, "unknown editor",
			goerr.V(option.EditorKey, def.Editor))
	}

	d := option.Descriptor{
		ID:               def.ID,
		Path:             def.Path,
		Name:             def.Name,
		Description:      def.Description,
		Category:         def.Category,
		Editor:           kind,
		DefaultValue:     def.Default,
		Settings:         def.settings(kind),
		HideFromDefaults: def.HideFromDefaults,
	}
	if d.ID == "" {
		d.ID = def.Path
	}

	if def.ShowIf != "" {
		if d.ShowIf, err = compileShowIf(def.ShowIf); err != nil {
			return option.Descriptor{}, err
		}
	}
	if def.ShouldApply != "" {
		if d.ShouldApply, err = compileShouldApply(def.ShouldApply); err != nil {
			return option.Descriptor{}, err
		}
	}
	if def.Process != "" {
		if d.Process, err = LookupProcessor(def.Process); err != nil {
			return option.Descriptor{}, err
		}
	}
	if kind == types.EditorLinks || kind == types.EditorActions {
		d.ItemsCount = option.ListCount
	}

	return d, nil
}

func (def OptionDef) settings(kind types.EditorKind) any {
	switch kind {
	case types.EditorRadio, types.EditorSelect, types.EditorMultiSelect:
		s := option.SelectSettings{}
		for _, c := range def.Choices {
			s.Options = append(s.Options, option.SelectableValue{
				Value:       c.Value,
				Label:       c.Label,
				Description: c.Description,
			})
		}
		return s
	case types.EditorNumber:
		return option.NumberSettings{Min: def.Min, Max: def.Max, Step: def.Step, Integer: def.Integer}
	case types.EditorSlider:
		s := option.SliderSettings{}
		if def.Min != nil {
			s.Min = *def.Min
		}
		if def.Max != nil {
			s.Max = *def.Max
		}
		if def.Step != nil {
			s.Step = *def.Step
		}
		return s
	}
	return nil
}
