package option

import "reflect"

// SelectableValue is one choice of a radio, select or multi-select editor
type SelectableValue struct {
	Value       any    `json:"value"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// NumberSettings configures the number editor. Nil bounds mean unbounded.
type NumberSettings struct {
	Placeholder string   `json:"placeholder,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Integer     bool     `json:"integer,omitempty"`
}

// SliderSettings configures the slider editor
type SliderSettings struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Step      float64 `json:"step,omitempty"`
	AriaLabel string  `json:"aria_label,omitempty"`
}

// TextSettings configures the text editor
type TextSettings struct {
	Placeholder        string `json:"placeholder,omitempty"`
	ExpandTemplateVars bool   `json:"expand_template_vars,omitempty"`
	UseTextarea        bool   `json:"use_textarea,omitempty"`
	MaxLength          int    `json:"max_length,omitempty"`
}

// SelectSettings configures radio, select and multi-select editors
type SelectSettings struct {
	Options          []SelectableValue `json:"options"`
	Placeholder      string            `json:"placeholder,omitempty"`
	IsClearable      bool              `json:"is_clearable,omitempty"`
	AllowCustomValue bool              `json:"allow_custom_value,omitempty"`
	// FieldOptions derives additional choices from the fields being edited
	FieldOptions func(fields []*Field) []SelectableValue `json:"-"`
}

// Resolve returns a copy of the settings with the choices derived from
// fields appended to the static ones
func (s SelectSettings) Resolve(fields []*Field) SelectSettings {
	if s.FieldOptions == nil {
		return s
	}
	resolved := s
	resolved.Options = append(append([]SelectableValue(nil), s.Options...), s.FieldOptions(fields)...)
	resolved.FieldOptions = nil
	return resolved
}

// Has reports whether value is one of the options
func (s SelectSettings) Has(value any) bool {
	for _, opt := range s.Options {
		if sameValue(opt.Value, value) {
			return true
		}
	}
	return false
}

// sameValue compares choice values; numbers compare by value regardless of
// their Go type since decoded configurations carry float64 or int64.
func sameValue(a, b any) bool {
	af, aNum := number(a)
	bf, bNum := number(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	if _, isString := v.(string); isString {
		return 0, false
	}
	return toFloat(v)
}

// ColorSettings configures the color picker
type ColorSettings struct {
	AllowUndefined    bool `json:"allow_undefined,omitempty"`
	EnableNamedColors bool `json:"enable_named_colors,omitempty"`
}

// FieldColorSettings configures the field color scheme editor
type FieldColorSettings struct {
	ByValueSupport       bool `json:"by_value_support,omitempty"`
	BySeriesSupport      bool `json:"by_series_support,omitempty"`
	PreferThresholdsMode bool `json:"prefer_thresholds_mode,omitempty"`
}

// FieldNameSettings configures the field name picker. Filter limits the
// candidate fields offered by the picker.
type FieldNameSettings struct {
	Placeholder string              `json:"placeholder,omitempty"`
	Filter      func(f *Field) bool `json:"-"`
}

// StatsPickerSettings configures the reducer picker
type StatsPickerSettings struct {
	AllowMultiple bool   `json:"allow_multiple,omitempty"`
	DefaultStat   string `json:"default_stat,omitempty"`
}

// UnitSettings configures the unit picker
type UnitSettings struct {
	Placeholder string `json:"placeholder,omitempty"`
	IsClearable bool   `json:"is_clearable,omitempty"`
}

// StringArraySettings configures the string list editor
type StringArraySettings struct {
	Placeholder string `json:"placeholder,omitempty"`
}
