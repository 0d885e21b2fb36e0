// Package builtin registers the panel plugins shipped with vizopts
package builtin

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/panel/heatmap"
	"github.com/secmon-lab/vizopts/pkg/panel/table"
	"github.com/secmon-lab/vizopts/pkg/panel/timeseries"
)

var constructors = []func() (*panel.Plugin, error){
	timeseries.New,
	heatmap.New,
	table.New,
}

// IsBuiltin reports whether id belongs to a plugin shipped with vizopts
func IsBuiltin(id types.PluginID) bool {
	switch id {
	case timeseries.ID, heatmap.ID, table.ID:
		return true
	}
	return false
}

// Register builds every builtin plugin and adds it to r
func Register(r *panel.Registry) error {
	for _, newPlugin := range constructors {
		p, err := newPlugin()
		if err != nil {
			return goerr.Wrap(err, "failed to build builtin plugin")
		}
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding all builtin plugins
func NewRegistry() (*panel.Registry, error) {
	r := panel.NewRegistry()
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}
