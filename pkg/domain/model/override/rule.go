package override

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// Property assigns Value to the option at path ID
type Property struct {
	ID    string `json:"id" firestore:"id"`
	Value any    `json:"value" firestore:"value"`
}

// Rule is a set of property assignments applied to the fields selected by Matcher
type Rule struct {
	Matcher    Matcher    `json:"matcher" firestore:"matcher"`
	Properties []Property `json:"properties" firestore:"properties"`
}

// Assignment is one (matcher, path, value) tuple of a flattened rule list.
// Rule and Property locate the tuple in the saved configuration.
type Assignment struct {
	Rule     int     `json:"rule"`
	Property int     `json:"property"`
	Matcher  Matcher `json:"matcher"`
	Path     string  `json:"path"`
	Value    any     `json:"value,omitempty"`
}

// Flatten returns the assignments of rules in application order
func Flatten(rules []Rule) []Assignment {
	var result []Assignment
	for i, rule := range rules {
		for j, p := range rule.Properties {
			result = append(result, Assignment{
				Rule:     i,
				Property: j,
				Matcher:  rule.Matcher,
				Path:     p.ID,
				Value:    p.Value,
			})
		}
	}
	return result
}

// Validate checks the matcher and that every property names a path
func (r Rule) Validate() error {
	var errs []error
	if _, err := r.Matcher.Compile(); err != nil {
		errs = append(errs, err)
	}
	for i, p := range r.Properties {
		if p.ID == "" {
			errs = append(errs, goerr.Wrap(ErrInvalidRule, "property path is required",
				goerr.V(PropertyIdxKey, i)))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Clone returns a deep copy of the rule
func (r Rule) Clone() Rule {
	copied := Rule{Matcher: r.Matcher}
	if r.Properties != nil {
		copied.Properties = make([]Property, len(r.Properties))
		for i, p := range r.Properties {
			copied.Properties[i] = Property{ID: p.ID, Value: option.CloneValue(p.Value)}
		}
	}
	return copied
}
