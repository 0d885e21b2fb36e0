package interfaces

import (
	"context"

	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// PanelRepository defines the interface for saved panel persistence
type PanelRepository interface {
	// Create stores a new panel. An empty ID is replaced by a new one.
	Create(ctx context.Context, panel *model.Panel) (*model.Panel, error)

	// Get retrieves a panel by ID
	Get(ctx context.Context, id types.PanelID) (*model.Panel, error)

	// List retrieves all panels ordered by creation time
	List(ctx context.Context) ([]*model.Panel, error)

	// ListByPlugin retrieves the panels of one plugin ordered by creation time
	ListByPlugin(ctx context.Context, pluginID types.PluginID) ([]*model.Panel, error)

	// Update replaces an existing panel, keeping its creation time
	Update(ctx context.Context, panel *model.Panel) (*model.Panel, error)

	// Delete deletes a panel by ID
	Delete(ctx context.Context, id types.PanelID) error
}
