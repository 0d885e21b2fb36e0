package option

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// Contributor appends a reusable block of options (axis, legend, ...) to a builder
type Contributor func(b *Builder)

// Builder accumulates option descriptors in registration order. Registration
// mistakes are collected and reported by Build, so calls can be chained.
// A Builder is not safe for concurrent use; the Schema it builds is.
type Builder struct {
	state      *builderState
	idPrefix   string
	pathPrefix string
}

type builderState struct {
	descriptors []Descriptor
	errs        []error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{state: &builderState{}}
}

// Scope returns a builder that appends into the same sequence. pathPrefix is
// prepended to every registered path and idPrefix to every explicit ID; a
// descriptor without ID takes its full path as ID. ShowIf predicates
// registered through the scope receive the sub-configuration found at
// pathPrefix, so contributors can be written relative to their scope.
func (b *Builder) Scope(idPrefix, pathPrefix string) *Builder {
	return &Builder{
		state:      b.state,
		idPrefix:   b.idPrefix + idPrefix,
		pathPrefix: b.pathPrefix + pathPrefix,
	}
}

// Extend runs contributors against the builder in order
func (b *Builder) Extend(contributors ...Contributor) *Builder {
	for _, c := range contributors {
		if c != nil {
			c(b)
		}
	}
	return b
}

// Len returns the number of registered descriptors
func (b *Builder) Len() int {
	return len(b.state.descriptors)
}

// AddOption registers d as is. ID defaults to the full path.
func (b *Builder) AddOption(d Descriptor) *Builder {
	if d.Path == "" {
		b.fail(goerr.Wrap(ErrConfig, "option path is required",
			goerr.V(OptionIDKey, d.ID), goerr.V(NameKey, d.Name), goerr.V(OptionIdxKey, b.Len())))
		return b
	}
	if d.Name == "" {
		b.fail(goerr.Wrap(ErrConfig, "option name is required",
			goerr.V(PathKey, b.pathPrefix+d.Path)))
		return b
	}
	if !d.Editor.IsValid() {
		b.fail(goerr.Wrap(ErrConfig, "unknown editor kind",
			goerr.V(PathKey, b.pathPrefix+d.Path), goerr.V(EditorKey, d.Editor)))
		return b
	}
	if err := validateSettings(d.Editor, d.Settings); err != nil {
		b.fail(goerr.Wrap(err, "invalid option settings",
			goerr.V(PathKey, b.pathPrefix+d.Path), goerr.V(EditorKey, d.Editor)))
		return b
	}

	d.Path = b.pathPrefix + d.Path
	if d.ID == "" {
		d.ID = d.Path
	} else {
		d.ID = b.idPrefix + d.ID
	}
	if d.Process == nil {
		d.Process = defaultProcessor(d.Editor)
	}
	if d.ShowIf != nil && b.pathPrefix != "" {
		d.ShowIf = relativeShowIf(b.pathPrefix, d.ShowIf)
	}

	b.state.descriptors = append(b.state.descriptors, d.clone())
	return b
}

func (b *Builder) add(kind types.EditorKind, d Descriptor) *Builder {
	d.Editor = kind
	return b.AddOption(d)
}

// AddRadio registers a radio group option (Settings: SelectSettings)
func (b *Builder) AddRadio(d Descriptor) *Builder { return b.add(types.EditorRadio, d) }

// AddNumberInput registers a numeric input (Settings: NumberSettings)
func (b *Builder) AddNumberInput(d Descriptor) *Builder { return b.add(types.EditorNumber, d) }

// AddTextInput registers a text input (Settings: TextSettings)
func (b *Builder) AddTextInput(d Descriptor) *Builder { return b.add(types.EditorText, d) }

// AddBooleanSwitch registers a boolean switch
func (b *Builder) AddBooleanSwitch(d Descriptor) *Builder { return b.add(types.EditorBoolean, d) }

// AddSliderInput registers a slider (Settings: SliderSettings, required)
func (b *Builder) AddSliderInput(d Descriptor) *Builder { return b.add(types.EditorSlider, d) }

// AddSelect registers a single-choice select (Settings: SelectSettings)
func (b *Builder) AddSelect(d Descriptor) *Builder { return b.add(types.EditorSelect, d) }

// AddMultiSelect registers a multi-choice select (Settings: SelectSettings)
func (b *Builder) AddMultiSelect(d Descriptor) *Builder { return b.add(types.EditorMultiSelect, d) }

// AddColorPicker registers a color picker (Settings: ColorSettings)
func (b *Builder) AddColorPicker(d Descriptor) *Builder { return b.add(types.EditorColor, d) }

// AddFieldNamePicker registers a field name picker (Settings: FieldNameSettings)
func (b *Builder) AddFieldNamePicker(d Descriptor) *Builder { return b.add(types.EditorFieldName, d) }

// AddUnitPicker registers a unit picker (Settings: UnitSettings)
func (b *Builder) AddUnitPicker(d Descriptor) *Builder { return b.add(types.EditorUnit, d) }

// AddStringArray registers a list of strings editor
func (b *Builder) AddStringArray(d Descriptor) *Builder { return b.add(types.EditorStrings, d) }

// AddStatsPicker registers a reducer picker (Settings: StatsPickerSettings)
func (b *Builder) AddStatsPicker(d Descriptor) *Builder { return b.add(types.EditorStatsPicker, d) }

// AddCustomEditor registers an option rendered by a custom editor. When
// d.Editor is empty the generic custom kind is used.
func (b *Builder) AddCustomEditor(d Descriptor) *Builder {
	if d.Editor == "" {
		d.Editor = types.EditorCustom
	}
	return b.AddOption(d)
}

func (b *Builder) fail(err error) {
	b.state.errs = append(b.state.errs, err)
}

// Build freezes the registered descriptors into a Schema. It fails when a
// registration was malformed, when an ID was registered twice, or when two
// descriptors claim the same path for the same field type.
func (b *Builder) Build() (*Schema, error) {
	errs := append([]error(nil), b.state.errs...)

	seenIDs := make(map[string]int, len(b.state.descriptors))
	for i, d := range b.state.descriptors {
		if prev, exists := seenIDs[d.ID]; exists {
			errs = append(errs, goerr.Wrap(ErrDuplicateOptionID, "option ID registered twice",
				goerr.V(OptionIDKey, d.ID),
				goerr.V(OptionIdxKey, i),
				goerr.V(OtherIdxKey, prev)))
			continue
		}
		seenIDs[d.ID] = i
	}

	for _, ft := range types.AllFieldTypes() {
		sample := &Field{Type: ft}
		claimed := make(map[string]string)
		for i := range b.state.descriptors {
			d := &b.state.descriptors[i]
			if !d.AppliesTo(sample) {
				continue
			}
			if owner, exists := claimed[d.Path]; exists && owner != d.ID {
				errs = append(errs, goerr.Wrap(ErrDuplicatePath, "option path claimed twice",
					goerr.V(PathKey, d.Path),
					goerr.V(FieldTypeKey, ft),
					goerr.V(OptionIDKey, d.ID),
					goerr.V(OtherIDKey, owner)))
				continue
			}
			claimed[d.Path] = d.ID
		}
	}

	if len(errs) > 0 {
		return nil, goerr.Wrap(errors.Join(errs...), "failed to build option schema",
			goerr.V("error_count", len(errs)))
	}

	return newSchema(b.state.descriptors), nil
}

// MustBuild is Build for plugin registration at process start; it panics on
// a malformed schema.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func relativeShowIf(prefix string, fn ShowIfFunc) ShowIfFunc {
	root := strings.TrimSuffix(prefix, ".")
	return func(current Config) bool {
		sub, _ := asMap(current.Lookup(root))
		if sub == nil {
			sub = map[string]any{}
		}
		return fn(Config(sub))
	}
}

func defaultProcessor(kind types.EditorKind) OverrideProcessor {
	switch kind {
	case types.EditorNumber, types.EditorSlider:
		return NumberProcessor
	case types.EditorText, types.EditorUnit, types.EditorColor, types.EditorFieldName,
		types.EditorTimeZone, types.EditorDashboardUID:
		return StringProcessor
	case types.EditorBoolean:
		return BooleanProcessor
	case types.EditorLinks, types.EditorActions:
		return AppendProcessor
	case types.EditorMappings:
		return ValueMappingsProcessor
	case types.EditorThresholds:
		return ThresholdsProcessor
	default:
		return IdentityProcessor
	}
}

func validateSettings(kind types.EditorKind, settings any) error {
	if settings == nil {
		if kind == types.EditorSlider {
			return goerr.Wrap(ErrConfig, "slider requires SliderSettings")
		}
		return nil
	}

	ok := true
	switch kind {
	case types.EditorNumber:
		_, ok = settings.(NumberSettings)
	case types.EditorSlider:
		var s SliderSettings
		if s, ok = settings.(SliderSettings); ok && s.Min >= s.Max {
			return goerr.Wrap(ErrConfig, "slider min must be less than max",
				goerr.V("min", s.Min), goerr.V("max", s.Max))
		}
	case types.EditorText:
		_, ok = settings.(TextSettings)
	case types.EditorRadio, types.EditorSelect, types.EditorMultiSelect:
		_, ok = settings.(SelectSettings)
	case types.EditorColor:
		_, ok = settings.(ColorSettings)
	case types.EditorFieldColor:
		_, ok = settings.(FieldColorSettings)
	case types.EditorFieldName:
		_, ok = settings.(FieldNameSettings)
	case types.EditorStatsPicker:
		_, ok = settings.(StatsPickerSettings)
	case types.EditorUnit:
		_, ok = settings.(UnitSettings)
	case types.EditorStrings:
		_, ok = settings.(StringArraySettings)
	}

	if !ok {
		return goerr.Wrap(ErrConfig, "settings type does not match editor",
			goerr.V(ValueTypeKey, fmt.Sprintf("%T", settings)))
	}
	return nil
}
