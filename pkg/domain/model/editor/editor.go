package editor

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// ErrUnknownEditorKind is returned when no editor is registered for a kind.
// Renderers show an "unsupported" placeholder instead of failing.
var ErrUnknownEditorKind = goerr.New("unknown editor kind")

// ErrIncompleteRegistry is returned by Validate when a known kind has no editor
var ErrIncompleteRegistry = goerr.New("editor registry is incomplete")

// KindKey is the error value key for editor kinds
const KindKey = "editor_kind"

// Editor describes how values of one editor kind are edited and stored
type Editor struct {
	Kind        types.EditorKind `json:"kind"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	// ValueType is the JSON type stored at the option path
	ValueType string `json:"value_type"`
	// Collection editors display an item count badge
	Collection bool `json:"collection,omitempty"`
}

// Registry maps editor kinds to editors. It is populated at process start
// and read-only afterwards.
type Registry struct {
	entries map[types.EditorKind]*Editor
	order   []types.EditorKind
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[types.EditorKind]*Editor),
	}
}

// Register adds or replaces the editor for e.Kind
func (r *Registry) Register(e Editor) *Registry {
	if _, exists := r.entries[e.Kind]; !exists {
		r.order = append(r.order, e.Kind)
	}
	r.entries[e.Kind] = &e
	return r
}

// Get returns the editor registered for kind
func (r *Registry) Get(kind types.EditorKind) (*Editor, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownEditorKind, "editor not registered",
			goerr.V(KindKey, kind))
	}
	return e, nil
}

// Has reports whether kind is registered
func (r *Registry) Has(kind types.EditorKind) bool {
	_, ok := r.entries[kind]
	return ok
}

// List returns editors in registration order
func (r *Registry) List() []*Editor {
	result := make([]*Editor, 0, len(r.order))
	for _, kind := range r.order {
		result = append(result, r.entries[kind])
	}
	return result
}

// Validate checks that every known editor kind is registered
func (r *Registry) Validate() error {
	var missing []string
	for _, kind := range types.AllEditorKinds() {
		if !r.Has(kind) {
			missing = append(missing, kind.String())
		}
	}
	if len(missing) > 0 {
		return goerr.Wrap(ErrIncompleteRegistry, "editor kinds without editor",
			goerr.V("missing", missing))
	}
	return nil
}

// Default returns a registry holding the built-in editor of every kind
func Default() *Registry {
	r := NewRegistry()
	for _, e := range builtins {
		r.Register(e)
	}
	return r
}

var builtins = []Editor{
	{Kind: types.EditorText, Name: "Text", Description: "Single or multi line text input", ValueType: "string"},
	{Kind: types.EditorNumber, Name: "Number", Description: "Numeric input with optional bounds", ValueType: "number"},
	{Kind: types.EditorSlider, Name: "Slider", Description: "Bounded numeric slider", ValueType: "number"},
	{Kind: types.EditorBoolean, Name: "Switch", Description: "Boolean toggle", ValueType: "boolean"},
	{Kind: types.EditorRadio, Name: "Radio", Description: "Single choice from a small set", ValueType: "string"},
	{Kind: types.EditorSelect, Name: "Select", Description: "Single choice from a list", ValueType: "string"},
	{Kind: types.EditorMultiSelect, Name: "Multi select", Description: "Several choices from a list", ValueType: "array"},
	{Kind: types.EditorUnit, Name: "Unit", Description: "Unit picker", ValueType: "string"},
	{Kind: types.EditorLinks, Name: "Data links", Description: "Links attached to values", ValueType: "array", Collection: true},
	{Kind: types.EditorActions, Name: "Actions", Description: "Actions triggered from values", ValueType: "array", Collection: true},
	{Kind: types.EditorStatsPicker, Name: "Calculation", Description: "Reducer picker", ValueType: "array"},
	{Kind: types.EditorStrings, Name: "Strings", Description: "List of strings", ValueType: "array"},
	{Kind: types.EditorTimeZone, Name: "Time zone", Description: "Time zone picker", ValueType: "string"},
	{Kind: types.EditorFieldColor, Name: "Color scheme", Description: "Field color mode picker", ValueType: "object"},
	{Kind: types.EditorColor, Name: "Color", Description: "Color picker", ValueType: "string"},
	{Kind: types.EditorFieldName, Name: "Field name", Description: "Field name picker", ValueType: "string"},
	{Kind: types.EditorDashboardUID, Name: "Dashboard", Description: "Dashboard picker", ValueType: "string"},
	{Kind: types.EditorMappings, Name: "Value mappings", Description: "Value to text and color mappings", ValueType: "array", Collection: true},
	{Kind: types.EditorThresholds, Name: "Thresholds", Description: "Threshold steps", ValueType: "object", Collection: true},
	{Kind: types.EditorCustom, Name: "Custom", Description: "Plugin provided editor", ValueType: "any"},
}
