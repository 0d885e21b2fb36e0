package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/editor"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

// PaneTarget selects the schema an options pane is built from
type PaneTarget string

const (
	// PaneTargetPanel is the panel level options pane
	PaneTargetPanel PaneTarget = "panel"
	// PaneTargetField is the field config pane. Without a field it is the
	// shared defaults pane; with a field it lists what can be overridden.
	PaneTargetField PaneTarget = "field"
)

// PaneRequest is the input of OptionsPane
type PaneRequest struct {
	PluginID types.PluginID `json:"plugin_id"`
	Target   PaneTarget     `json:"target"`
	// Field is evaluated against ShouldApply; nil means every option applies
	Field *option.Field `json:"field,omitempty"`
	// Fields are the fields of the data, used for data derived choices
	Fields  []*option.Field `json:"fields,omitempty"`
	Current option.Config   `json:"current,omitempty"`
}

// Pane is the renderer boundary: what an options pane shows
type Pane struct {
	PluginID types.PluginID `json:"plugin_id"`
	Target   PaneTarget     `json:"target"`
	Groups   []PaneGroup    `json:"groups"`
}

// PaneGroup is one category section
type PaneGroup struct {
	Category []string   `json:"category"`
	Items    []PaneItem `json:"items"`
}

// PaneItem is one visible option
type PaneItem struct {
	ID          string           `json:"id"`
	Path        string           `json:"path"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Editor      types.EditorKind `json:"editor"`
	EditorInfo  *editor.Editor   `json:"editor_info,omitempty"`
	// Unsupported marks an editor kind the registry cannot render
	Unsupported bool `json:"unsupported,omitempty"`
	Settings    any  `json:"settings,omitempty"`
	Value       any  `json:"value,omitempty"`
	IsDefault   bool `json:"is_default"`
	Count       *int `json:"count,omitempty"`
	// FieldChoices are the names offered by a field name picker
	FieldChoices []string `json:"field_choices,omitempty"`
}

// OptionsPane evaluates applicability and visibility for the request and
// groups the visible options by category. Visibility is evaluated against
// the current values layered on the defaults.
func (uc *PluginUseCase) OptionsPane(ctx context.Context, req PaneRequest) (*Pane, error) {
	target := req.Target
	if target == "" {
		target = PaneTargetPanel
	}

	p, err := uc.plugins.Get(req.PluginID)
	if err != nil {
		return nil, err
	}

	var schema *option.Schema
	switch target {
	case PaneTargetPanel:
		schema = p.Options
	case PaneTargetField:
		schema = p.FieldConfig
	default:
		return nil, goerr.Wrap(ErrInvalidRequest, "unknown pane target",
			goerr.V(TargetKey, target), goerr.V(PluginIDKey, req.PluginID))
	}
	uc.metrics.recordPane(string(req.PluginID), string(target))

	current := req.Current
	if current == nil {
		current = option.Config{}
	}
	effective := schema.Defaults(req.Field).Merge(current)

	pane := &Pane{PluginID: p.ID, Target: target, Groups: []PaneGroup{}}
	for _, group := range schema.Pane(req.Field, effective) {
		items := make([]PaneItem, 0, len(group.Descriptors))
		for _, d := range group.Descriptors {
			if target == PaneTargetField && req.Field == nil && d.HideFromDefaults {
				continue
			}
			if target == PaneTargetField && req.Field != nil && d.HideFromOverrides {
				continue
			}
			items = append(items, uc.paneItem(ctx, d, current, effective, req.Fields))
		}
		if len(items) > 0 {
			pane.Groups = append(pane.Groups, PaneGroup{Category: group.Category, Items: items})
		}
	}
	return pane, nil
}

func (uc *PluginUseCase) paneItem(ctx context.Context, d *option.Descriptor, current, effective option.Config, fields []*option.Field) PaneItem {
	item := PaneItem{
		ID:          d.ID,
		Path:        d.Path,
		Name:        d.Name,
		Description: d.Description,
		Editor:      d.Editor,
		Settings:    d.Settings,
		Value:       effective.Lookup(d.Path),
		IsDefault:   !current.Has(d.Path),
	}

	if e, err := uc.editors.Get(d.Editor); err != nil {
		if !isUnknownEditor(err) {
			logging.From(ctx).Warn("editor lookup failed", "editor", d.Editor, "error", err)
		}
		item.Unsupported = true
	} else {
		item.EditorInfo = e
	}

	switch s := d.Settings.(type) {
	case option.SelectSettings:
		item.Settings = s.Resolve(fields)
	case option.FieldNameSettings:
		for _, f := range fields {
			if f != nil && (s.Filter == nil || s.Filter(f)) {
				item.FieldChoices = append(item.FieldChoices, f.Title())
			}
		}
	}

	if d.ItemsCount != nil {
		n := d.Count(item.Value)
		item.Count = &n
	}
	return item
}
