package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PanelCollection is the collection name of saved panels without prefix
const PanelCollection = "panels"

type panelDocument struct {
	ID            string          `firestore:"id"`
	PluginID      string          `firestore:"plugin_id"`
	Title         string          `firestore:"title"`
	Options       map[string]any  `firestore:"options"`
	FieldDefaults map[string]any  `firestore:"field_defaults"`
	Overrides     []override.Rule `firestore:"overrides"`
	CreatedAt     time.Time       `firestore:"created_at"`
	UpdatedAt     time.Time       `firestore:"updated_at"`
}

type panelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPanelRepository(client *firestore.Client) *panelRepository {
	return &panelRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// CollectionName returns the panel collection name for a prefix
func CollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + PanelCollection
	}
	return PanelCollection
}

func (r *panelRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix))
}

func panelToDocument(panel *model.Panel) *panelDocument {
	return &panelDocument{
		ID:            string(panel.ID),
		PluginID:      string(panel.PluginID),
		Title:         panel.Title,
		Options:       panel.Options,
		FieldDefaults: panel.FieldConfig.Defaults,
		Overrides:     panel.FieldConfig.Overrides,
		CreatedAt:     panel.CreatedAt,
		UpdatedAt:     panel.UpdatedAt,
	}
}

func panelToModel(doc *panelDocument) *model.Panel {
	panel := &model.Panel{
		ID:       types.PanelID(doc.ID),
		PluginID: types.PluginID(doc.PluginID),
		Title:    doc.Title,
		Options:  option.Config(doc.Options),
		FieldConfig: model.FieldConfig{
			Defaults:  option.Config(doc.FieldDefaults),
			Overrides: doc.Overrides,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	panel.Normalize()
	return panel
}

func (r *panelRepository) Create(ctx context.Context, panel *model.Panel) (*model.Panel, error) {
	now := time.Now().UTC()
	created := panel.Clone()
	if created.ID == "" {
		created.ID = types.NewPanelID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := panelToDocument(created)
	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create panel", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *panelRepository) Get(ctx context.Context, id types.PanelID) (*model.Panel, error) {
	snapshot, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get panel", goerr.V("id", id))
	}

	var doc panelDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal panel", goerr.V("id", id))
	}

	return panelToModel(&doc), nil
}

func (r *panelRepository) List(ctx context.Context) ([]*model.Panel, error) {
	return r.query(ctx, r.collection().OrderBy("created_at", firestore.Asc))
}

// ListByPlugin requires the (plugin_id, created_at) composite index created by migrate
func (r *panelRepository) ListByPlugin(ctx context.Context, pluginID types.PluginID) ([]*model.Panel, error) {
	q := r.collection().
		Where("plugin_id", "==", string(pluginID)).
		OrderBy("created_at", firestore.Asc)
	return r.query(ctx, q)
}

func (r *panelRepository) query(ctx context.Context, q firestore.Query) ([]*model.Panel, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	panels := []*model.Panel{}
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate panels")
		}

		var doc panelDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal panel", goerr.V("id", snapshot.Ref.ID))
		}
		panels = append(panels, panelToModel(&doc))
	}

	return panels, nil
}

func (r *panelRepository) Update(ctx context.Context, panel *model.Panel) (*model.Panel, error) {
	docRef := r.collection().Doc(string(panel.ID))

	var updated *model.Panel
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", panel.ID))
			}
			return goerr.Wrap(err, "failed to check panel existence", goerr.V("id", panel.ID))
		}

		var existing panelDocument
		if err := snapshot.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal panel", goerr.V("id", panel.ID))
		}

		updated = panel.Clone()
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		return tx.Set(docRef, panelToDocument(updated))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update panel", goerr.V("id", panel.ID))
	}

	return updated, nil
}

func (r *panelRepository) Delete(ctx context.Context, id types.PanelID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "panel not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check panel existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete panel", goerr.V("id", id))
	}

	return nil
}
