package builtin_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/builtin"
	"github.com/secmon-lab/vizopts/pkg/panel/heatmap"
	"github.com/secmon-lab/vizopts/pkg/panel/table"
	"github.com/secmon-lab/vizopts/pkg/panel/timeseries"
)

func TestNewRegistry(t *testing.T) {
	r, err := builtin.NewRegistry()
	gt.NoError(t, err).Required()

	plugins := r.List()
	gt.Array(t, plugins).Length(3).Required()
	gt.Value(t, plugins[0].ID).Equal(timeseries.ID)
	gt.Value(t, plugins[1].ID).Equal(heatmap.ID)
	gt.Value(t, plugins[2].ID).Equal(table.ID)

	for _, p := range plugins {
		gt.Number(t, p.FieldConfig.Len()).NotEqual(0)
		gt.Number(t, p.Options.Len()).NotEqual(0)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	r, err := builtin.NewRegistry()
	gt.NoError(t, err).Required()
	gt.Error(t, builtin.Register(r)).Is(panel.ErrDuplicatePlugin)
}
