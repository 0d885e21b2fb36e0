package panel

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// Plugin is a registered panel type with its frozen option schemas
type Plugin struct {
	ID          types.PluginID
	Name        string
	Description string
	// FieldConfig holds standard and custom field options; custom options
	// live under the "custom." path.
	FieldConfig *option.Schema
	// Options holds the panel level options
	Options *option.Schema
}

// FieldConfigOptions controls how a plugin's field option schema is built
type FieldConfigOptions struct {
	StandardOptions        map[StandardProperty]StandardOverride
	DisableStandardOptions []StandardProperty
	// UseCustomConfig registers plugin specific field options, scoped under "custom."
	UseCustomConfig option.Contributor
}

// PluginBuilder assembles a Plugin. Schemas are built once by Build.
type PluginBuilder struct {
	id           types.PluginID
	name         string
	description  string
	fieldConfig  FieldConfigOptions
	panelOptions []option.Contributor
}

// NewPlugin starts the definition of a plugin
func NewPlugin(id types.PluginID, name string) *PluginBuilder {
	return &PluginBuilder{id: id, name: name}
}

// Describe sets the plugin description
func (b *PluginBuilder) Describe(description string) *PluginBuilder {
	b.description = description
	return b
}

// UseFieldConfig sets the field option configuration
func (b *PluginBuilder) UseFieldConfig(opts FieldConfigOptions) *PluginBuilder {
	b.fieldConfig = opts
	return b
}

// SetPanelOptions appends contributors of panel level options
func (b *PluginBuilder) SetPanelOptions(contributors ...option.Contributor) *PluginBuilder {
	b.panelOptions = append(b.panelOptions, contributors...)
	return b
}

// Build builds and freezes both schemas of the plugin
func (b *PluginBuilder) Build() (*Plugin, error) {
	if err := b.id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidPlugin, "invalid plugin ID",
			goerr.V(PluginIDKey, b.id), goerr.V("error", err.Error()))
	}
	if b.name == "" {
		return nil, goerr.Wrap(ErrInvalidPlugin, "plugin name is required", goerr.V(PluginIDKey, b.id))
	}

	fb := option.NewBuilder().Extend(standardOptions(b.fieldConfig))
	if b.fieldConfig.UseCustomConfig != nil {
		fb.Scope("custom.", "custom.").Extend(b.fieldConfig.UseCustomConfig)
	}
	fieldSchema, fieldErr := fb.Build()

	panelSchema, panelErr := option.NewBuilder().Extend(b.panelOptions...).Build()

	if err := errors.Join(fieldErr, panelErr); err != nil {
		return nil, goerr.Wrap(err, "failed to build plugin schemas", goerr.V(PluginIDKey, b.id))
	}

	return &Plugin{
		ID:          b.id,
		Name:        b.name,
		Description: b.description,
		FieldConfig: fieldSchema,
		Options:     panelSchema,
	}, nil
}

// MustBuild is Build for plugins registered at process start
func (b *PluginBuilder) MustBuild() *Plugin {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultOptions returns the panel options a new panel of this plugin starts with
func (p *Plugin) DefaultOptions() option.Config {
	return p.Options.Defaults(nil)
}

// DefaultFieldConfig returns the field defaults a new panel starts with
func (p *Plugin) DefaultFieldConfig() option.Config {
	return p.FieldConfig.Defaults(nil)
}
