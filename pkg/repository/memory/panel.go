package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

type panelRepository struct {
	mu     sync.RWMutex
	panels map[types.PanelID]*model.Panel
}

func newPanelRepository() *panelRepository {
	return &panelRepository{
		panels: make(map[types.PanelID]*model.Panel),
	}
}

func (r *panelRepository) Create(ctx context.Context, panel *model.Panel) (*model.Panel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := panel.Clone()
	if created.ID == "" {
		created.ID = types.NewPanelID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.panels[created.ID] = created
	return created.Clone(), nil
}

func (r *panelRepository) Get(ctx context.Context, id types.PanelID) (*model.Panel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	panel, exists := r.panels[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", id))
	}

	return panel.Clone(), nil
}

func (r *panelRepository) List(ctx context.Context) ([]*model.Panel, error) {
	return r.list(func(*model.Panel) bool { return true }), nil
}

func (r *panelRepository) ListByPlugin(ctx context.Context, pluginID types.PluginID) ([]*model.Panel, error) {
	return r.list(func(p *model.Panel) bool { return p.PluginID == pluginID }), nil
}

func (r *panelRepository) list(match func(*model.Panel) bool) []*model.Panel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	panels := make([]*model.Panel, 0, len(r.panels))
	for _, panel := range r.panels {
		if match(panel) {
			panels = append(panels, panel.Clone())
		}
	}

	slices.SortFunc(panels, func(a, b *model.Panel) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return panels
}

func (r *panelRepository) Update(ctx context.Context, panel *model.Panel) (*model.Panel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.panels[panel.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", panel.ID))
	}

	updated := panel.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.panels[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *panelRepository) Delete(ctx context.Context, id types.PanelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.panels[id]; !exists {
		return goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", id))
	}

	delete(r.panels, id)
	return nil
}
