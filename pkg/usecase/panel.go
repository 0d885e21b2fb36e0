package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/interfaces"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/model/override"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"go.ytsaurus.tech/library/go/ptr"
)

// PanelUseCase handles saved panel configurations
type PanelUseCase struct {
	repo    interfaces.Repository
	plugins *PluginUseCase
	metrics *Metrics
}

// NewPanelUseCase creates a new PanelUseCase instance
func NewPanelUseCase(repo interfaces.Repository, plugins *PluginUseCase, metrics *Metrics) *PanelUseCase {
	return &PanelUseCase{
		repo:    repo,
		plugins: plugins,
		metrics: metrics,
	}
}

// IssueSeverity tells whether an issue blocks saving
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// IssueScope locates an issue in the panel
type IssueScope string

const (
	ScopePanel     IssueScope = "panel"
	ScopeOptions   IssueScope = "options"
	ScopeDefaults  IssueScope = "defaults"
	ScopeOverrides IssueScope = "overrides"
)

// Issue is one finding of ValidatePanel
type Issue struct {
	Severity IssueSeverity `json:"severity"`
	Scope    IssueScope    `json:"scope"`
	Path     string        `json:"path,omitempty"`
	Rule     *int          `json:"rule,omitempty"`
	Property *int          `json:"property,omitempty"`
	Message  string        `json:"message"`
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePanel checks a panel against its plugin schemas. Invalid option
// values, invalid matchers and failing override processors are errors;
// override properties with no matching option are warnings since they are
// ignored when applied. An unknown plugin is returned as error.
func (uc *PanelUseCase) ValidatePanel(ctx context.Context, p *model.Panel) ([]Issue, error) {
	plugin, err := uc.plugins.plugins.Get(p.PluginID)
	if err != nil {
		return nil, err
	}

	issues := []Issue{}
	if err := p.Validate(); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Scope: ScopePanel, Message: err.Error()})
	}

	for _, err := range model.NewOptionValidator(plugin.Options).Validate(p.Options) {
		issues = append(issues, Issue{Severity: SeverityError, Scope: ScopeOptions, Path: pathOf(err), Message: err.Error()})
	}
	fieldValidator := model.NewOptionValidator(plugin.FieldConfig)
	for _, err := range fieldValidator.Validate(p.FieldConfig.Defaults) {
		issues = append(issues, Issue{Severity: SeverityError, Scope: ScopeDefaults, Path: pathOf(err), Message: err.Error()})
	}

	ignored, failures := override.NewEngine(plugin.FieldConfig).Check(p.FieldConfig.Overrides, fieldValidator.ValidateValue)
	for _, f := range failures {
		issue := Issue{
			Severity: SeverityError,
			Scope:    ScopeOverrides,
			Path:     f.Path,
			Rule:     ptr.Int(f.Rule),
			Message:  f.Err.Error(),
		}
		if f.Property >= 0 {
			issue.Property = ptr.Int(f.Property)
		}
		issues = append(issues, issue)
	}
	for _, a := range ignored {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Scope:    ScopeOverrides,
			Path:     a.Path,
			Rule:     ptr.Int(a.Rule),
			Property: ptr.Int(a.Property),
			Message:  fmt.Sprintf("no option at path %q; the property is ignored", a.Path),
		})
	}

	return issues, nil
}

// CreatePanel validates and stores a new panel
func (uc *PanelUseCase) CreatePanel(ctx context.Context, p *model.Panel) (created *model.Panel, err error) {
	defer func() { uc.metrics.recordPanelOperation("create", err) }()

	p = p.Clone()
	p.Normalize()
	if err := uc.checkSavable(ctx, p); err != nil {
		return nil, err
	}

	created, err = uc.repo.Panel().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create panel")
	}

	logging.From(ctx).Info("panel created", "panel_id", created.ID, "plugin_id", created.PluginID)
	return created, nil
}

// GetPanel retrieves a saved panel
func (uc *PanelUseCase) GetPanel(ctx context.Context, id types.PanelID) (*model.Panel, error) {
	p, err := uc.repo.Panel().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return p, nil
}

// ListPanels returns saved panels, all of them or those of one plugin
func (uc *PanelUseCase) ListPanels(ctx context.Context, pluginID types.PluginID) ([]*model.Panel, error) {
	var panels []*model.Panel
	var err error
	if pluginID == "" {
		panels, err = uc.repo.Panel().List(ctx)
	} else {
		panels, err = uc.repo.Panel().ListByPlugin(ctx, pluginID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list panels", goerr.V(PluginIDKey, pluginID))
	}
	return panels, nil
}

// UpdatePanel validates and replaces a saved panel
func (uc *PanelUseCase) UpdatePanel(ctx context.Context, p *model.Panel) (updated *model.Panel, err error) {
	defer func() { uc.metrics.recordPanelOperation("update", err) }()

	if err := p.ID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidPanel, "invalid panel ID", goerr.V(PanelIDKey, p.ID), goerr.V("error", err.Error()))
	}

	p = p.Clone()
	p.Normalize()
	if err := uc.checkSavable(ctx, p); err != nil {
		return nil, err
	}

	updated, err = uc.repo.Panel().Update(ctx, p)
	if err != nil {
		return nil, notFound(err, p.ID)
	}

	logging.From(ctx).Info("panel updated", "panel_id", updated.ID)
	return updated, nil
}

// DeletePanel deletes a saved panel
func (uc *PanelUseCase) DeletePanel(ctx context.Context, id types.PanelID) (err error) {
	defer func() { uc.metrics.recordPanelOperation("delete", err) }()

	if err := uc.repo.Panel().Delete(ctx, id); err != nil {
		return notFound(err, id)
	}

	logging.From(ctx).Info("panel deleted", "panel_id", id)
	return nil
}

// EffectiveConfigs resolves the field configurations of a saved panel
func (uc *PanelUseCase) EffectiveConfigs(ctx context.Context, id types.PanelID, fields []*option.Field) ([]*EffectiveConfig, error) {
	p, err := uc.GetPanel(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.plugins.EffectiveConfigs(ctx, p.PluginID, p.FieldConfig, fields)
}

func (uc *PanelUseCase) checkSavable(ctx context.Context, p *model.Panel) error {
	issues, err := uc.ValidatePanel(ctx, p)
	if err != nil {
		return goerr.Wrap(ErrInvalidPanel, "unknown plugin",
			goerr.V(PluginIDKey, p.PluginID), goerr.V("error", err.Error()))
	}
	if HasErrors(issues) {
		return goerr.Wrap(ErrInvalidPanel, "panel has validation errors",
			goerr.V(PanelIDKey, p.ID), goerr.V(IssuesKey, issues))
	}
	for _, issue := range issues {
		logging.From(ctx).Warn("panel validation warning",
			"panel_id", p.ID, "path", issue.Path, "message", issue.Message)
	}
	return nil
}

func notFound(err error, id types.PanelID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrPanelNotFound, "panel not found", goerr.V(PanelIDKey, id))
	}
	return goerr.Wrap(err, "panel repository failed", goerr.V(PanelIDKey, id))
}

func pathOf(err error) string {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		if v, ok := ge.Values()[model.PathKey].(string); ok {
			return v
		}
	}
	return ""
}
