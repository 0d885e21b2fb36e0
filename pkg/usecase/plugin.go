package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/editor"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

// PluginUseCase serves plugin schemas: listing, options panes and effective
// field configurations
type PluginUseCase struct {
	plugins *panel.Registry
	editors *editor.Registry
	metrics *Metrics
}

// NewPluginUseCase creates a new PluginUseCase instance
func NewPluginUseCase(plugins *panel.Registry, editors *editor.Registry, metrics *Metrics) *PluginUseCase {
	return &PluginUseCase{
		plugins: plugins,
		editors: editors,
		metrics: metrics,
	}
}

// PluginSummary is the list entry of a plugin
type PluginSummary struct {
	ID               types.PluginID `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	FieldOptionCount int            `json:"field_option_count"`
	PanelOptionCount int            `json:"panel_option_count"`
}

// PluginDetail describes both schemas of a plugin
type PluginDetail struct {
	PluginSummary
	FieldConfig []OptionInfo `json:"field_config"`
	Options     []OptionInfo `json:"options"`
}

// OptionInfo is the serializable part of a descriptor
type OptionInfo struct {
	ID                string           `json:"id"`
	Path              string           `json:"path"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Category          []string         `json:"category,omitempty"`
	Editor            types.EditorKind `json:"editor"`
	Settings          any              `json:"settings,omitempty"`
	DefaultValue      any              `json:"default_value,omitempty"`
	Conditional       bool             `json:"conditional,omitempty"`
	FieldTypeFiltered bool             `json:"field_type_filtered,omitempty"`
	HideFromDefaults  bool             `json:"hide_from_defaults,omitempty"`
	HideFromOverrides bool             `json:"hide_from_overrides,omitempty"`
}

func summarize(p *panel.Plugin) PluginSummary {
	return PluginSummary{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		FieldOptionCount: p.FieldConfig.Len(),
		PanelOptionCount: p.Options.Len(),
	}
}

// DescribeSchema lists the descriptors of schema in order
func DescribeSchema(schema *option.Schema) []OptionInfo {
	all := schema.All()
	result := make([]OptionInfo, 0, len(all))
	for _, d := range all {
		result = append(result, OptionInfo{
			ID:                d.ID,
			Path:              d.Path,
			Name:              d.Name,
			Description:       d.Description,
			Category:          d.Category,
			Editor:            d.Editor,
			Settings:          d.Settings,
			DefaultValue:      d.DefaultValue,
			Conditional:       d.ShowIf != nil,
			FieldTypeFiltered: d.ShouldApply != nil,
			HideFromDefaults:  d.HideFromDefaults,
			HideFromOverrides: d.HideFromOverrides,
		})
	}
	return result
}

// ListPlugins returns the registered plugins in registration order
func (uc *PluginUseCase) ListPlugins(ctx context.Context) []PluginSummary {
	plugins := uc.plugins.List()
	result := make([]PluginSummary, 0, len(plugins))
	for _, p := range plugins {
		result = append(result, summarize(p))
	}
	return result
}

// GetPlugin returns a plugin with both schemas described
func (uc *PluginUseCase) GetPlugin(ctx context.Context, id types.PluginID) (*PluginDetail, error) {
	p, err := uc.plugins.Get(id)
	if err != nil {
		return nil, err
	}
	return &PluginDetail{
		PluginSummary: summarize(p),
		FieldConfig:   DescribeSchema(p.FieldConfig),
		Options:       DescribeSchema(p.Options),
	}, nil
}

// EffectiveConfig is the resolved configuration of one field
type EffectiveConfig struct {
	Field    *option.Field         `json:"field"`
	Config   option.Config         `json:"config"`
	Applied  []override.Assignment `json:"applied"`
	Ignored  []override.Assignment `json:"ignored"`
	Failures []FailureInfo         `json:"failures"`
}

// FailureInfo is a failed override assignment with its error message
type FailureInfo struct {
	override.Assignment
	Error string `json:"error"`
}

// EffectiveConfigs resolves the configuration of every field: option
// defaults, then saved defaults, then override rules in order. Failed and
// ignored assignments are logged and reported; they never abort resolution.
func (uc *PluginUseCase) EffectiveConfigs(ctx context.Context, pluginID types.PluginID, fc model.FieldConfig, fields []*option.Field) ([]*EffectiveConfig, error) {
	p, err := uc.plugins.Get(pluginID)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With("plugin_id", pluginID)
	engine := override.NewEngine(p.FieldConfig)

	result := make([]*EffectiveConfig, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			return nil, goerr.Wrap(ErrInvalidRequest, "field is required", goerr.V(PluginIDKey, pluginID))
		}

		r := engine.Resolve(f, fc.Defaults, fc.Overrides)
		for _, a := range r.Ignored {
			logger.Debug("override ignored: no applicable option", "field", f.Title(), "path", a.Path)
		}

		failures := make([]FailureInfo, 0, len(r.Failures))
		for _, failure := range r.Failures {
			logger.Warn("override failed",
				"field", f.Title(),
				"rule", failure.Rule,
				"path", failure.Path,
				"error", failure.Err,
			)
			failures = append(failures, FailureInfo{Assignment: failure.Assignment, Error: failure.Err.Error()})
		}
		uc.metrics.recordOverrides(string(pluginID), len(r.Applied), len(r.Ignored), len(r.Failures))

		result = append(result, &EffectiveConfig{
			Field:    f,
			Config:   r.Config,
			Applied:  nonNil(r.Applied),
			Ignored:  nonNil(r.Ignored),
			Failures: failures,
		})
	}
	return result, nil
}

func nonNil(a []override.Assignment) []override.Assignment {
	if a == nil {
		return []override.Assignment{}
	}
	return a
}

func isUnknownEditor(err error) bool {
	return errors.Is(err, editor.ErrUnknownEditorKind)
}
