package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/interfaces"
	"github.com/secmon-lab/vizopts/pkg/domain/model/editor"
	"github.com/secmon-lab/vizopts/pkg/panel"
)

type UseCases struct {
	repo    interfaces.Repository
	plugins *panel.Registry
	editors *editor.Registry
	metrics *Metrics

	Plugin *PluginUseCase
	Panel  *PanelUseCase
}

type Option func(*UseCases)

// WithRegistry sets the panel plugin registry. The default is empty.
func WithRegistry(r *panel.Registry) Option {
	return func(uc *UseCases) {
		uc.plugins = r
	}
}

// WithEditors sets the editor registry. The default holds the builtin editors.
func WithEditors(r *editor.Registry) Option {
	return func(uc *UseCases) {
		uc.editors = r
	}
}

// WithMetrics enables Prometheus metrics
func WithMetrics(m *Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

// New wires the use cases. It fails when the editor registry cannot render
// every built-in editor kind.
func New(repo interfaces.Repository, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		repo:    repo,
		plugins: panel.NewRegistry(),
		editors: editor.Default(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if err := uc.editors.Validate(); err != nil {
		return nil, goerr.Wrap(err, "incomplete editor registry")
	}

	uc.Plugin = NewPluginUseCase(uc.plugins, uc.editors, uc.metrics)
	uc.Panel = NewPanelUseCase(repo, uc.Plugin, uc.metrics)

	return uc, nil
}

// Plugins returns the plugin registry in use
func (uc *UseCases) Plugins() *panel.Registry {
	return uc.plugins
}
