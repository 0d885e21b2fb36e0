package option

import (
	"strings"

	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// ShouldApplyFunc decides whether a property is relevant for a field
type ShouldApplyFunc func(f *Field) bool

// ShowIfFunc decides whether a property is shown given the configuration
// currently being edited
type ShowIfFunc func(current Config) bool

// ItemsCountFunc returns the badge count shown next to collection editors
type ItemsCountFunc func(value any) int

// Descriptor declares one user-editable property. Predicates and processors
// must be pure: they are re-evaluated on every render and every override pass.
type Descriptor struct {
	ID          string
	Path        string
	Name        string
	Description string
	Category    []string
	Editor      types.EditorKind

	// Settings is editor specific, e.g. NumberSettings or SelectSettings
	Settings     any
	DefaultValue any

	ShouldApply ShouldApplyFunc
	ShowIf      ShowIfFunc
	Process     OverrideProcessor
	ItemsCount  ItemsCountFunc

	// HideFromDefaults keeps the property out of the shared defaults pane;
	// it can still be set through an override.
	HideFromDefaults bool
	// HideFromOverrides keeps the property out of the override property picker.
	HideFromOverrides bool
}

// AppliesTo evaluates ShouldApply. A nil predicate or nil field means
// always applicable; a panicking predicate means not applicable.
func (d *Descriptor) AppliesTo(f *Field) (applies bool) {
	if d.ShouldApply == nil || f == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			applies = false
		}
	}()
	return d.ShouldApply(f)
}

// VisibleIn evaluates ShowIf against the configuration being edited. A nil
// predicate means always visible; a panicking predicate means hidden.
func (d *Descriptor) VisibleIn(current Config) (visible bool) {
	if d.ShowIf == nil {
		return true
	}
	if current == nil {
		current = Config{}
	}
	defer func() {
		if r := recover(); r != nil {
			visible = false
		}
	}()
	return d.ShowIf(current)
}

// Count returns the item count for value, or -1 when the descriptor has no
// ItemsCount function.
func (d *Descriptor) Count(value any) (n int) {
	if d.ItemsCount == nil {
		return -1
	}
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return d.ItemsCount(value)
}

// CategoryKey returns the category breadcrumb joined for grouping
func (d *Descriptor) CategoryKey() string {
	return strings.Join(d.Category, " > ")
}

func (d *Descriptor) clone() Descriptor {
	cp := *d
	cp.Category = append([]string(nil), d.Category...)
	cp.DefaultValue = CloneValue(d.DefaultValue)
	return cp
}
