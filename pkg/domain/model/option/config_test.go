package option_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

func TestConfig_GetSet(t *testing.T) {
	cfg := option.Config{}
	cfg.Set("legend.displayMode", "table")
	cfg.Set("legend.showLegend", true)
	cfg.Set("unit", "ms")

	v, ok := cfg.Get("legend.displayMode")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal("table")
	gt.Value(t, cfg.String("unit")).Equal("ms")
	gt.Bool(t, cfg.Bool("legend.showLegend")).True()
	gt.Bool(t, cfg.Has("legend")).True()
}

func TestConfig_MissingPaths(t *testing.T) {
	cfg := option.Config{"legend": "not-an-object"}

	t.Run("intermediate is not an object", func(t *testing.T) {
		_, ok := cfg.Get("legend.showLegend")
		gt.Bool(t, ok).False()
		gt.Bool(t, cfg.Bool("legend.showLegend")).False()
	})

	t.Run("missing root", func(t *testing.T) {
		gt.Value(t, cfg.String("tooltip.mode")).Equal("")
		gt.Value(t, cfg.Lookup("tooltip.mode")).Nil()
	})

	t.Run("nil config", func(t *testing.T) {
		var empty option.Config
		_, ok := empty.Get("a.b")
		gt.Bool(t, ok).False()
		gt.Bool(t, empty.Delete("a")).False()
	})

	t.Run("empty path", func(t *testing.T) {
		_, ok := cfg.Get("")
		gt.Bool(t, ok).False()
	})
}

func TestConfig_SetReplacesScalarIntermediate(t *testing.T) {
	cfg := option.Config{"footer": true}
	cfg.Set("footer.show", false)

	v, ok := cfg.Get("footer.show")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal(false)
}

func TestConfig_Float(t *testing.T) {
	cfg := option.Config{
		"a": 3,
		"b": int64(4),
		"c": 1.5,
		"d": "2.5",
		"e": "abc",
	}

	for path, want := range map[string]float64{"a": 3, "b": 4, "c": 1.5, "d": 2.5} {
		got, ok := cfg.Float(path)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(want)
	}

	_, ok := cfg.Float("e")
	gt.Bool(t, ok).False()
	_, ok = cfg.Float("missing")
	gt.Bool(t, ok).False()
}

func TestConfig_Strings(t *testing.T) {
	cfg := option.Config{
		"typed":   []string{"a", "b"},
		"untyped": []any{"x", 1, "y"},
	}
	gt.Array(t, cfg.Strings("typed")).Length(2)
	gt.Array(t, cfg.Strings("untyped")).Length(2)
	gt.Array(t, cfg.Strings("missing")).Length(0)
}

func TestConfig_Delete(t *testing.T) {
	cfg := option.Config{}
	cfg.Set("a.b.c", 1)

	gt.Bool(t, cfg.Delete("a.b.c")).True()
	gt.Bool(t, cfg.Has("a.b.c")).False()
	gt.Bool(t, cfg.Has("a.b")).True()
	gt.Bool(t, cfg.Delete("a.x.c")).False()
}

func TestConfig_CloneIsDeep(t *testing.T) {
	cfg := option.Config{}
	cfg.Set("legend.calcs", []any{"mean"})
	cfg.Set("legend.showLegend", true)

	cp := cfg.Clone()
	cp.Set("legend.showLegend", false)
	cp["legend"].(map[string]any)["calcs"].([]any)[0] = "max"

	gt.Bool(t, cfg.Bool("legend.showLegend")).True()
	gt.Value(t, cfg.Strings("legend.calcs")[0]).Equal("mean")
}

func TestConfig_Merge(t *testing.T) {
	base := option.Config{}
	base.Set("legend.showLegend", true)
	base.Set("legend.placement", "bottom")
	base.Set("unit", "short")

	src := option.Config{}
	src.Set("legend.placement", "right")
	src.Set("decimals", 2)

	merged := base.Clone().Merge(src)
	gt.Bool(t, merged.Bool("legend.showLegend")).True()
	gt.Value(t, merged.String("legend.placement")).Equal("right")
	gt.Value(t, merged.String("unit")).Equal("short")
	gt.Value(t, merged.Lookup("decimals")).Equal(2)

	// source values are copied, not aliased
	src.Set("legend.placement", "bottom")
	gt.Value(t, merged.String("legend.placement")).Equal("right")
	gt.Value(t, base.String("legend.placement")).Equal("bottom")
}

func TestConfig_Flatten(t *testing.T) {
	cfg := option.Config{}
	cfg.Set("legend.showLegend", true)
	cfg.Set("tooltip.mode", "single")
	cfg.Set("unit", "ms")

	flat := cfg.Flatten()
	gt.Map(t, flat).HasKey("legend.showLegend")
	gt.Map(t, flat).HasKey("tooltip.mode")
	gt.Map(t, flat).HasKey("unit")
	gt.Value(t, len(flat)).Equal(3)
}
