package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/domain/interfaces"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/repository/firestore"
	"github.com/secmon-lab/vizopts/pkg/repository/memory"
)

func newTestPanel(pluginID types.PluginID, title string) *model.Panel {
	return &model.Panel{
		PluginID: pluginID,
		Title:    title,
		Options: option.Config{
			"legend": map[string]any{"showLegend": true},
		},
		FieldConfig: model.FieldConfig{
			Defaults: option.Config{"unit": "short", "decimals": 2.0},
			Overrides: []override.Rule{
				{
					Matcher: override.Matcher{ID: types.MatcherByName, Options: "latency"},
					Properties: []override.Property{
						{ID: "unit", Value: "ms"},
					},
				},
			},
		},
	}
}

func runPanelRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Panel().Create(ctx, newTestPanel("timeseries", "Latency"))
		gt.NoError(t, err).Required()

		gt.NoError(t, created.ID.Validate())
		gt.Value(t, created.Title).Equal("Latency")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.CreatedAt).Equal(created.UpdatedAt)
	})

	t.Run("Create with provided ID preserves it", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		panel := newTestPanel("timeseries", "Fixed")
		panel.ID = types.NewPanelID()

		created, err := repo.Panel().Create(ctx, panel)
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(panel.ID)
	})

	t.Run("Get retrieves stored configuration", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Panel().Create(ctx, newTestPanel("timeseries", "Latency"))
		gt.NoError(t, err).Required()

		retrieved, err := repo.Panel().Get(ctx, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.PluginID).Equal(types.PluginID("timeseries"))
		gt.Bool(t, retrieved.Options.Bool("legend.showLegend")).True()
		gt.Value(t, retrieved.FieldConfig.Defaults.String("unit")).Equal("short")
		decimals, ok := retrieved.FieldConfig.Defaults.Float("decimals")
		gt.Bool(t, ok).True()
		gt.Number(t, decimals).Equal(2)

		gt.Array(t, retrieved.FieldConfig.Overrides).Length(1).Required()
		rule := retrieved.FieldConfig.Overrides[0]
		gt.Value(t, rule.Matcher.ID).Equal(types.MatcherByName)
		gt.Value(t, rule.Matcher.Options).Equal("latency")
		gt.Array(t, rule.Properties).Length(1).Required()
		gt.Value(t, rule.Properties[0].Value).Equal(any("ms"))
		gt.Bool(t, time.Since(retrieved.CreatedAt) <= 3*time.Second).True()
	})

	t.Run("Get returns error for non-existent panel", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Panel().Get(ctx, types.NewPanelID())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Stored panel is isolated from caller mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		panel := newTestPanel("timeseries", "Isolated")
		created, err := repo.Panel().Create(ctx, panel)
		gt.NoError(t, err).Required()

		panel.FieldConfig.Defaults.Set("unit", "bytes")
		created.FieldConfig.Overrides[0].Properties[0].Value = "s"

		retrieved, err := repo.Panel().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.FieldConfig.Defaults.String("unit")).Equal("short")
		gt.Value(t, retrieved.FieldConfig.Overrides[0].Properties[0].Value).Equal(any("ms"))
	})

	t.Run("List returns panels in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		panels, err := repo.Panel().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, panels).Length(0)

		first, err := repo.Panel().Create(ctx, newTestPanel("timeseries", "First"))
		gt.NoError(t, err).Required()
		time.Sleep(10 * time.Millisecond)
		second, err := repo.Panel().Create(ctx, newTestPanel("table", "Second"))
		gt.NoError(t, err).Required()

		panels, err = repo.Panel().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, panels).Length(2).Required()
		gt.Value(t, panels[0].ID).Equal(first.ID)
		gt.Value(t, panels[1].ID).Equal(second.ID)
	})

	t.Run("ListByPlugin filters by plugin", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, p := range []*model.Panel{
			newTestPanel("timeseries", "A"),
			newTestPanel("table", "B"),
			newTestPanel("timeseries", "C"),
		} {
			_, err := repo.Panel().Create(ctx, p)
			gt.NoError(t, err).Required()
			time.Sleep(5 * time.Millisecond)
		}

		panels, err := repo.Panel().ListByPlugin(ctx, "timeseries")
		gt.NoError(t, err).Required()
		gt.Array(t, panels).Length(2).Required()
		gt.Value(t, panels[0].Title).Equal("A")
		gt.Value(t, panels[1].Title).Equal("C")
	})

	t.Run("Update replaces configuration and keeps creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Panel().Create(ctx, newTestPanel("timeseries", "Original"))
		gt.NoError(t, err).Required()

		time.Sleep(10 * time.Millisecond)

		changed := created.Clone()
		changed.Title = "Updated"
		changed.FieldConfig.Overrides = nil
		updated, err := repo.Panel().Update(ctx, changed)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Title).Equal("Updated")
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
		gt.Bool(t, updated.UpdatedAt.After(created.UpdatedAt)).True()

		retrieved, err := repo.Panel().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Title).Equal("Updated")
		gt.Array(t, retrieved.FieldConfig.Overrides).Length(0)
	})

	t.Run("Update returns error for non-existent panel", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		panel := newTestPanel("timeseries", "Missing")
		panel.ID = types.NewPanelID()
		_, err := repo.Panel().Update(ctx, panel)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete removes panel", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Panel().Create(ctx, newTestPanel("timeseries", "Doomed"))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Panel().Delete(ctx, created.ID)).Required()

		_, err = repo.Panel().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		err = repo.Panel().Delete(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func newFirestorePanelRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemoryPanelRepository(t *testing.T) {
	runPanelRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestorePanelRepository(t *testing.T) {
	runPanelRepositoryTest(t, newFirestorePanelRepository)
}
