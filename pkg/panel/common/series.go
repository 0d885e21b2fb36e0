package common

import (
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// StackingDefaults is the default stacking configuration of a plugin
type StackingDefaults struct {
	Mode  string
	Group string
}

// StackingConfig registers the stacking field option of numeric series
func StackingConfig(defaults StackingDefaults, category []string) option.Contributor {
	mode := defaults.Mode
	if mode == "" {
		mode = StackingNone
	}
	group := defaults.Group
	if group == "" {
		group = "A"
	}

	return func(b *option.Builder) {
		b.AddCustomEditor(option.Descriptor{
			ID:           "stacking",
			Path:         "stacking",
			Name:         "Stack series",
			Category:     category,
			DefaultValue: map[string]any{"mode": mode, "group": group},
			Settings:     option.SelectSettings{Options: StackingOptions},
			Process:      option.IdentityProcessor,
			ShouldApply:  func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
		})
	}
}

// HideFrom registers the "hide in area" field option. It is only set
// through overrides.
func HideFrom() option.Contributor {
	return func(b *option.Builder) {
		b.AddCustomEditor(option.Descriptor{
			ID:       "hideFrom",
			Path:     "hideFrom",
			Name:     "Hide in area",
			Category: []string{"Series"},
			DefaultValue: map[string]any{
				"tooltip": false,
				"viz":     false,
				"legend":  false,
			},
			HideFromDefaults: true,
			Process:          option.IdentityProcessor,
		})
	}
}
