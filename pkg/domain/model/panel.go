package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// Panel is a saved panel configuration: panel options plus the field
// configuration (shared defaults and per-field override rules)
type Panel struct {
	ID          types.PanelID  `json:"id"`
	PluginID    types.PluginID `json:"plugin_id"`
	Title       string         `json:"title"`
	Options     option.Config  `json:"options"`
	FieldConfig FieldConfig    `json:"field_config"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// FieldConfig holds the defaults applied to every field and the override
// rules applied on top of them
type FieldConfig struct {
	Defaults  option.Config   `json:"defaults"`
	Overrides []override.Rule `json:"overrides"`
}

// Validate checks the identity of the panel and the shape of its override rules.
// Option values are checked against the plugin schema by OptionValidator.
func (p *Panel) Validate() error {
	if err := p.PluginID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid plugin ID", goerr.V(PanelIDKey, p.ID))
	}
	if p.Title == "" {
		return goerr.Wrap(ErrMissingRequired, "panel title is required", goerr.V(PanelIDKey, p.ID))
	}
	for i, rule := range p.FieldConfig.Overrides {
		if err := rule.Validate(); err != nil {
			return goerr.Wrap(err, "invalid override rule",
				goerr.V(PanelIDKey, p.ID), goerr.V(override.RuleIdxKey, i))
		}
	}
	return nil
}

// Normalize replaces nil configurations with empty ones
func (p *Panel) Normalize() {
	if p.Options == nil {
		p.Options = option.Config{}
	}
	if p.FieldConfig.Defaults == nil {
		p.FieldConfig.Defaults = option.Config{}
	}
	if p.FieldConfig.Overrides == nil {
		p.FieldConfig.Overrides = []override.Rule{}
	}
}

// Clone returns a deep copy of the panel
func (p *Panel) Clone() *Panel {
	copied := *p
	if p.Options != nil {
		copied.Options = p.Options.Clone()
	}
	if p.FieldConfig.Defaults != nil {
		copied.FieldConfig.Defaults = p.FieldConfig.Defaults.Clone()
	}
	if p.FieldConfig.Overrides != nil {
		copied.FieldConfig.Overrides = make([]override.Rule, len(p.FieldConfig.Overrides))
		for i, rule := range p.FieldConfig.Overrides {
			copied.FieldConfig.Overrides[i] = rule.Clone()
		}
	}
	return &copied
}
