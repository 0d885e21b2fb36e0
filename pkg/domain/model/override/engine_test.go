package override_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

func newSchema(t *testing.T) *option.Schema {
	t.Helper()
	schema, err := option.NewBuilder().
		AddUnitPicker(option.Descriptor{Path: "unit", Name: "Unit"}).
		AddNumberInput(option.Descriptor{Path: "decimals", Name: "Decimals"}).
		AddTextInput(option.Descriptor{Path: "displayName", Name: "Display name"}).
		AddNumberInput(option.Descriptor{
			Path:         "custom.lineWidth",
			Name:         "Line width",
			DefaultValue: 1,
			ShouldApply:  func(f *option.Field) bool { return f.Type == types.FieldTypeNumber },
		}).
		AddCustomEditor(option.Descriptor{
			Path: "custom.broken",
			Name: "Broken",
			Process: func(_, _ any) (any, error) {
				panic("processor bug")
			},
		}).
		Build()
	gt.NoError(t, err).Required()
	return schema
}

func byName(name string) override.Matcher {
	return override.Matcher{ID: types.MatcherByName, Options: name}
}

func all() override.Matcher {
	return override.Matcher{ID: types.MatcherAll}
}

func TestEngine_LastApplicableRuleWins(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{{ID: "unit", Value: "bytes"}}},
		{Matcher: byName("latency"), Properties: []override.Property{{ID: "unit", Value: "ms"}}},
	}

	latency := engine.Apply(&option.Field{Name: "latency", Type: types.FieldTypeNumber}, option.Config{}, rules)
	gt.Value(t, latency.Config.String("unit")).Equal("ms")
	gt.Array(t, latency.Applied).Length(2)

	other := engine.Apply(&option.Field{Name: "other", Type: types.FieldTypeNumber}, option.Config{}, rules)
	gt.Value(t, other.Config.String("unit")).Equal("bytes")
	gt.Array(t, other.Applied).Length(1)
}

func TestEngine_DisjointPathsAreOrderIndependent(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	a := override.Rule{Matcher: all(), Properties: []override.Property{{ID: "unit", Value: "percent"}}}
	b := override.Rule{Matcher: all(), Properties: []override.Property{{ID: "decimals", Value: "2"}}}
	f := &option.Field{Name: "cpu", Type: types.FieldTypeNumber}

	ab := engine.Apply(f, option.Config{}, []override.Rule{a, b})
	ba := engine.Apply(f, option.Config{}, []override.Rule{b, a})
	gt.Value(t, ab.Config).Equal(ba.Config)

	decimals, ok := ab.Config.Float("decimals")
	gt.Bool(t, ok).True()
	gt.Value(t, decimals).Equal(2.0)
}

func TestEngine_UnknownPathIsIgnored(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	base := option.Config{"unit": "short"}
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{{ID: "custom.sparkline", Value: true}}},
	}

	result := engine.Apply(&option.Field{Name: "x"}, base, rules)
	gt.Value(t, result.Config).Equal(base)
	gt.Array(t, result.Ignored).Length(1).Required()
	gt.Value(t, result.Ignored[0].Path).Equal("custom.sparkline")
	gt.Array(t, result.Failures).Length(0)
}

func TestEngine_NotApplicablePathIsIgnored(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{{ID: "custom.lineWidth", Value: 3}}},
	}

	result := engine.Apply(&option.Field{Name: "host", Type: types.FieldTypeString}, option.Config{}, rules)
	gt.Bool(t, result.Config.Has("custom.lineWidth")).False()
	gt.Array(t, result.Ignored).Length(1)
}

func TestEngine_FailureIsIsolated(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	base := option.Config{"decimals": 1.0}
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{
			{ID: "unit", Value: "bytes"},
			{ID: "decimals", Value: "not a number"},
			{ID: "custom.broken", Value: 1},
			{ID: "displayName", Value: "Memory"},
		}},
	}

	result := engine.Apply(&option.Field{Name: "mem"}, base, rules)
	gt.Value(t, result.Config.String("unit")).Equal("bytes")
	gt.Value(t, result.Config.String("displayName")).Equal("Memory")
	gt.Value(t, result.Config.Lookup("decimals")).Equal(1.0)
	gt.Bool(t, result.Config.Has("custom.broken")).False()

	gt.Array(t, result.Failures).Length(2).Required()
	gt.Value(t, result.Failures[0].Path).Equal("decimals")
	gt.Error(t, result.Failures[0].Err).Is(override.ErrOverrideApply)
	gt.Error(t, result.Failures[0].Err).Is(option.ErrInvalidValue)
	gt.Value(t, result.Failures[1].Path).Equal("custom.broken")
	gt.Error(t, result.Failures[1].Err).Is(override.ErrOverrideApply)
}

func TestEngine_InvalidMatcherSkipsRule(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{
		{Matcher: override.Matcher{ID: types.MatcherByRegexp, Options: "("}, Properties: []override.Property{{ID: "unit", Value: "ms"}}},
		{Matcher: all(), Properties: []override.Property{{ID: "decimals", Value: 0}}},
	}

	result := engine.Apply(&option.Field{Name: "a"}, option.Config{}, rules)
	gt.Bool(t, result.Config.Has("unit")).False()
	gt.Bool(t, result.Config.Has("decimals")).True()
	gt.Array(t, result.Failures).Length(1).Required()
	gt.Error(t, result.Failures[0].Err).Is(override.ErrInvalidMatcher)
}

func TestEngine_BaseIsNotModified(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	base := option.Config{"unit": "short"}
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{{ID: "unit", Value: "ms"}}},
	}

	_ = engine.Apply(&option.Field{Name: "a"}, base, rules)
	gt.Value(t, base.String("unit")).Equal("short")
}

func TestEngine_NilValueClearsPath(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{
		{Matcher: all(), Properties: []override.Property{{ID: "decimals", Value: ""}}},
	}

	result := engine.Apply(&option.Field{Name: "a"}, option.Config{"decimals": 3.0}, rules)
	gt.Bool(t, result.Config.Has("decimals")).False()
}

func TestEngine_Resolve(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	saved := option.Config{"unit": "short"}
	rules := []override.Rule{
		{Matcher: byName("cpu"), Properties: []override.Property{{ID: "custom.lineWidth", Value: 2}}},
	}

	cpu := engine.Resolve(&option.Field{Name: "cpu", Type: types.FieldTypeNumber}, saved, rules)
	gt.Value(t, cpu.Config.String("unit")).Equal("short")
	gt.Value(t, cpu.Config.Lookup("custom.lineWidth")).Equal(2.0)

	mem := engine.Resolve(&option.Field{Name: "mem", Type: types.FieldTypeNumber}, saved, rules)
	gt.Value(t, mem.Config.Lookup("custom.lineWidth")).Equal(1)

	host := engine.Resolve(&option.Field{Name: "host", Type: types.FieldTypeString}, saved, rules)
	gt.Bool(t, host.Config.Has("custom.lineWidth")).False()
}

func TestEngine_Check(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{
		{
			Matcher: byName("latency"),
			Properties: []override.Property{
				{ID: "unit", Value: "ms"},
				{ID: "decimals", Value: "many"},
				{ID: "custom.unknown", Value: 1},
			},
		},
		{
			Matcher:    override.Matcher{ID: types.MatcherByRegexp, Options: "(["},
			Properties: []override.Property{{ID: "custom.broken", Value: 1}},
		},
	}

	ignored, failures := engine.Check(rules)
	gt.Array(t, ignored).Length(1).Required()
	gt.Value(t, ignored[0].Path).Equal("custom.unknown")

	gt.Array(t, failures).Length(3).Required()
	gt.Value(t, failures[0].Path).Equal("decimals")
	gt.Error(t, failures[0].Err).Is(override.ErrOverrideApply)
	gt.Error(t, failures[0].Err).Is(option.ErrInvalidValue)
	gt.Number(t, failures[1].Property).Equal(-1)
	gt.Error(t, failures[1].Err).Is(override.ErrInvalidMatcher)
	gt.Value(t, failures[2].Path).Equal("custom.broken")
}

func TestEngine_CheckRunsValueChecks(t *testing.T) {
	engine := override.NewEngine(newSchema(t))
	rules := []override.Rule{{
		Matcher: all(),
		Properties: []override.Property{
			{ID: "decimals", Value: "99"},
			{ID: "decimals", Value: nil},
			{ID: "unit", Value: "ms"},
		},
	}}

	errTooLarge := errors.New("too large")
	var seen []any
	check := func(d *option.Descriptor, value any) error {
		seen = append(seen, value)
		if f, ok := value.(float64); ok && f > 15 {
			return errTooLarge
		}
		return nil
	}

	_, failures := engine.Check(rules, check)
	gt.Array(t, seen).Length(2)
	gt.Value(t, seen[0]).Equal(any(99.0))
	gt.Array(t, failures).Length(1).Required()
	gt.Value(t, failures[0].Path).Equal("decimals")
	gt.Number(t, failures[0].Property).Equal(0)
	gt.Error(t, failures[0].Err).Is(override.ErrOverrideApply)
	gt.Error(t, failures[0].Err).Is(errTooLarge)
}
