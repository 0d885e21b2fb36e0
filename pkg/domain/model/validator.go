package model

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// OptionValidator validates stored option values against an option schema
type OptionValidator struct {
	schema *option.Schema
}

// NewOptionValidator creates a new OptionValidator with the given schema
func NewOptionValidator(schema *option.Schema) *OptionValidator {
	return &OptionValidator{
		schema: schema,
	}
}

// Validate checks every value of cfg that belongs to a descriptor of the
// schema and returns one error per invalid value. Values at unknown paths are
// skipped so that configurations survive schema changes.
func (v *OptionValidator) Validate(cfg option.Config) []error {
	var errs []error
	for _, d := range v.schema.Applicable(nil) {
		value, ok := cfg.Get(d.Path)
		if !ok || value == nil {
			continue
		}

		if err := v.validateValue(d, value); err != nil {
			errs = append(errs, goerr.Wrap(err, "option validation failed",
				goerr.V(PathKey, d.Path),
				goerr.V(EditorKey, d.Editor)))
		}
	}
	return errs
}

// ValidateValue checks one value against d. It fits override.ValueCheck.
func (v *OptionValidator) ValidateValue(d *option.Descriptor, value any) error {
	if err := v.validateValue(d, value); err != nil {
		return goerr.Wrap(err, "option validation failed",
			goerr.V(PathKey, d.Path),
			goerr.V(EditorKey, d.Editor))
	}
	return nil
}

// validateValue validates a single value against its descriptor
func (v *OptionValidator) validateValue(d *option.Descriptor, value any) error {
	switch d.Editor {
	case types.EditorText, types.EditorUnit, types.EditorColor, types.EditorFieldName,
		types.EditorTimeZone, types.EditorDashboardUID:
		return validateString(d, value)
	case types.EditorNumber:
		return validateNumber(d, value)
	case types.EditorSlider:
		return validateSlider(d, value)
	case types.EditorBoolean:
		if _, ok := value.(bool); !ok {
			return typeError("boolean", value)
		}
		return nil
	case types.EditorRadio, types.EditorSelect:
		return validateChoice(d, value)
	case types.EditorMultiSelect:
		return validateMultiChoice(d, value)
	case types.EditorStrings, types.EditorStatsPicker:
		_, err := toStrings(value)
		return err
	case types.EditorLinks, types.EditorActions:
		if !isList(value) {
			return typeError("array", value)
		}
		return nil
	case types.EditorMappings:
		_, err := option.ValueMappingsProcessor(nil, value)
		return err
	case types.EditorThresholds:
		_, err := option.ThresholdsProcessor(nil, value)
		return err
	case types.EditorFieldColor:
		if _, ok := value.(map[string]any); !ok {
			return typeError("object", value)
		}
		return nil
	default:
		// custom editors own their value format
		return nil
	}
}

func validateString(_ *option.Descriptor, value any) error {
	if _, ok := value.(string); !ok {
		return typeError("string", value)
	}
	return nil
}

func validateNumber(d *option.Descriptor, value any) error {
	f, ok := number(value)
	if !ok {
		return typeError("number", value)
	}

	s, ok := d.Settings.(option.NumberSettings)
	if !ok {
		return nil
	}
	if s.Integer && f != math.Trunc(f) {
		return goerr.Wrap(ErrInvalidValueType, "value must be an integer",
			goerr.V(ValueKey, value))
	}
	if s.Min != nil && f < *s.Min {
		return goerr.Wrap(ErrOutOfRange, "value is below minimum",
			goerr.V(ValueKey, value), goerr.V("min", *s.Min))
	}
	if s.Max != nil && f > *s.Max {
		return goerr.Wrap(ErrOutOfRange, "value is above maximum",
			goerr.V(ValueKey, value), goerr.V("max", *s.Max))
	}
	return nil
}

func validateSlider(d *option.Descriptor, value any) error {
	f, ok := number(value)
	if !ok {
		return typeError("number", value)
	}
	s, ok := d.Settings.(option.SliderSettings)
	if ok && (f < s.Min || f > s.Max) {
		return goerr.Wrap(ErrOutOfRange, "value is outside slider bounds",
			goerr.V(ValueKey, value), goerr.V("min", s.Min), goerr.V("max", s.Max))
	}
	return nil
}

// validateChoice checks a radio or select value against the declared choices.
// Choices declared empty are filled at render time and accept anything.
func validateChoice(d *option.Descriptor, value any) error {
	s, ok := d.Settings.(option.SelectSettings)
	if !ok || len(s.Options) == 0 || s.AllowCustomValue {
		return nil
	}
	if !s.Has(value) {
		return goerr.Wrap(ErrInvalidChoice, "value not found in option choices",
			goerr.V(ValueKey, value))
	}
	return nil
}

func validateMultiChoice(d *option.Descriptor, value any) error {
	if !isList(value) {
		return typeError("array", value)
	}
	items, _ := value.([]any)
	if strs, ok := value.([]string); ok {
		for _, s := range strs {
			items = append(items, s)
		}
	}

	var errs []error
	for _, item := range items {
		if err := validateChoice(d, item); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func typeError(expected string, value any) error {
	return goerr.Wrap(ErrInvalidValueType, "unexpected value type",
		goerr.V(ExpectedTypeKey, expected),
		goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
}

func number(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func isList(value any) bool {
	switch value.(type) {
	case []any, []string, []map[string]any:
		return true
	default:
		return false
	}
}

func toStrings(value any) ([]string, error) {
	switch val := value.(type) {
	case []string:
		return slices.Clone(val), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, typeError("array of strings", value)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, typeError("array of strings", value)
	}
}
