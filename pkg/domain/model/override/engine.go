package override

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// Engine merges override rules into field configurations using the
// descriptors and processors of a schema
type Engine struct {
	schema *option.Schema
}

// NewEngine creates an engine bound to schema
func NewEngine(schema *option.Schema) *Engine {
	return &Engine{schema: schema}
}

// Failure is an assignment whose processor or matcher failed
type Failure struct {
	Assignment
	Err error
}

// Result is the effective configuration of one field with a record of how
// each assignment was treated
type Result struct {
	Field    *option.Field
	Config   option.Config
	Applied  []Assignment
	Ignored  []Assignment
	Failures []Failure
}

// Resolve builds the post-default base configuration of f (descriptor
// defaults merged with saved defaults) and applies rules to it.
func (e *Engine) Resolve(f *option.Field, saved option.Config, rules []Rule) *Result {
	base := e.schema.Defaults(f).Merge(saved)
	return e.Apply(f, base, rules)
}

// Apply merges rules into a copy of base for field f. Rules are filtered by
// matcher in order and later assignments to the same path win. Paths without
// an applicable descriptor are ignored. A failing processor or matcher is
// recorded and skipped; it never affects other assignments.
func (e *Engine) Apply(f *option.Field, base option.Config, rules []Rule) *Result {
	result := &Result{
		Field:  f,
		Config: base.Clone(),
	}

	for i, rule := range rules {
		match, err := rule.Matcher.Compile()
		if err != nil {
			result.Failures = append(result.Failures, Failure{
				Assignment: Assignment{Rule: i, Property: -1, Matcher: rule.Matcher},
				Err:        goerr.Wrap(err, "override rule skipped", goerr.V(RuleIdxKey, i)),
			})
			continue
		}
		if !match(f) {
			continue
		}

		for j, p := range rule.Properties {
			a := Assignment{Rule: i, Property: j, Matcher: rule.Matcher, Path: p.ID, Value: p.Value}

			d, ok := e.schema.ByPath(p.ID, f)
			if !ok {
				result.Ignored = append(result.Ignored, a)
				continue
			}

			value, err := process(d, result.Config.Lookup(p.ID), p.Value)
			if err != nil {
				result.Failures = append(result.Failures, Failure{
					Assignment: a,
					Err: ErrOverrideApply.Wrap(err,
						goerr.V(RuleIdxKey, i),
						goerr.V(PropertyIdxKey, j),
						goerr.V(PathKey, p.ID),
						goerr.V(FieldNameKey, f.Title())),
				})
				continue
			}

			if value == nil {
				result.Config.Delete(p.ID)
			} else {
				result.Config.Set(p.ID, value)
			}
			result.Applied = append(result.Applied, a)
		}
	}

	return result
}

// ValueCheck validates a processed override value against its descriptor
type ValueCheck func(d *option.Descriptor, value any) error

// Check validates rules without a concrete field. Every matcher is compiled
// and every property is run through the processor of a descriptor with the
// same path, starting from an empty value. The processed value is then given
// to checks. Properties with no descriptor are returned as ignored.
func (e *Engine) Check(rules []Rule, checks ...ValueCheck) (ignored []Assignment, failures []Failure) {
	for i, rule := range rules {
		if _, err := rule.Matcher.Compile(); err != nil {
			failures = append(failures, Failure{
				Assignment: Assignment{Rule: i, Property: -1, Matcher: rule.Matcher},
				Err:        goerr.Wrap(err, "invalid override matcher", goerr.V(RuleIdxKey, i)),
			})
		}

		for j, p := range rule.Properties {
			a := Assignment{Rule: i, Property: j, Matcher: rule.Matcher, Path: p.ID, Value: p.Value}

			d, ok := e.schema.ByPath(p.ID, nil)
			if !ok {
				ignored = append(ignored, a)
				continue
			}
			value, err := process(d, nil, p.Value)
			if err == nil && value != nil {
				err = runChecks(checks, d, value)
			}
			if err != nil {
				failures = append(failures, Failure{
					Assignment: a,
					Err: ErrOverrideApply.Wrap(err,
						goerr.V(RuleIdxKey, i),
						goerr.V(PropertyIdxKey, j),
						goerr.V(PathKey, p.ID)),
				})
			}
		}
	}
	return ignored, failures
}

func runChecks(checks []ValueCheck, d *option.Descriptor, value any) error {
	for _, check := range checks {
		if err := check(d, value); err != nil {
			return err
		}
	}
	return nil
}

func process(d *option.Descriptor, current, value any) (result any, err error) {
	proc := d.Process
	if proc == nil {
		proc = option.IdentityProcessor
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = goerr.New("override processor panicked", goerr.V(PanicKey, fmt.Sprint(r)))
		}
	}()

	return proc(option.CloneValue(current), value)
}
