package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// PanelFile is the file layout of a saved panel
type PanelFile struct {
	ID          string          `toml:"id" yaml:"id"`
	PluginID    string          `toml:"plugin_id" yaml:"plugin_id"`
	Title       string          `toml:"title" yaml:"title"`
	Options     map[string]any  `toml:"options" yaml:"options"`
	FieldConfig FieldConfigFile `toml:"field_config" yaml:"field_config"`
}

// FieldConfigFile holds the field defaults and override rules of a panel file
type FieldConfigFile struct {
	Defaults  map[string]any `toml:"defaults" yaml:"defaults"`
	Overrides []RuleFile     `toml:"overrides" yaml:"overrides"`
}

// RuleFile is one override rule of a panel file
type RuleFile struct {
	Matcher    MatcherFile    `toml:"matcher" yaml:"matcher"`
	Properties []PropertyFile `toml:"properties" yaml:"properties"`
}

type MatcherFile struct {
	ID      string `toml:"id" yaml:"id"`
	Options string `toml:"options" yaml:"options"`
}

type PropertyFile struct {
	ID    string `toml:"id" yaml:"id"`
	Value any    `toml:"value" yaml:"value"`
}

// IsPanelFile reports whether path has a panel file extension
func IsPanelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadPanel reads a panel from a TOML or YAML file. Only the shape is
// checked here; option values are validated against the plugin schema by
// the caller.
func LoadPanel(path string) (*model.Panel, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "panel file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read panel file", goerr.V(ConfigPathKey, path))
	}

	var file PanelFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML panel",
				goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse YAML panel",
				goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
		}
	default:
		return nil, goerr.Wrap(ErrUnknownFormat, "unsupported panel file extension", goerr.V(ConfigPathKey, path))
	}

	p, err := file.ToPanel()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid panel file", goerr.V(ConfigPathKey, path))
	}
	return p, nil
}

// ToPanel converts the file layout into a panel
func (f *PanelFile) ToPanel() (*model.Panel, error) {
	if f.PluginID == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "plugin_id is required")
	}
	if f.Title == "" {
		return nil, goerr.Wrap(ErrMissingName, "title is required", goerr.V("plugin_id", f.PluginID))
	}

	p := &model.Panel{
		ID:       types.PanelID(f.ID),
		PluginID: types.PluginID(f.PluginID),
		Title:    f.Title,
		Options:  option.Config(normalize(f.Options)),
		FieldConfig: model.FieldConfig{
			Defaults:  option.Config(normalize(f.FieldConfig.Defaults)),
			Overrides: make([]override.Rule, 0, len(f.FieldConfig.Overrides)),
		},
	}

	for i, rule := range f.FieldConfig.Overrides {
		if rule.Matcher.ID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "override matcher id is required", goerr.V(RuleIndexKey, i))
		}
		r := override.Rule{
			Matcher:    override.Matcher{ID: types.MatcherKind(rule.Matcher.ID), Options: rule.Matcher.Options},
			Properties: make([]override.Property, 0, len(rule.Properties)),
		}
		for _, prop := range rule.Properties {
			r.Properties = append(r.Properties, override.Property{ID: prop.ID, Value: normalizeValue(prop.Value)})
		}
		p.FieldConfig.Overrides = append(p.FieldConfig.Overrides, r)
	}

	p.Normalize()
	return p, nil
}

func normalize(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue converts decoder specific shapes into the JSON-like shapes
// stored in option.Config
func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalize(x)
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if s, ok := k.(string); ok {
				out[s] = normalizeValue(val)
			}
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeValue(val)
		}
		return out
	case int64:
		return float64(x)
	case int:
		return float64(x)
	default:
		return v
	}
}
