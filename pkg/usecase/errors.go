package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrPanelNotFound is returned when a saved panel does not exist
	ErrPanelNotFound = goerr.New("panel not found")

	// ErrInvalidPanel is returned when a panel fails validation on save
	ErrInvalidPanel = goerr.New("invalid panel")

	// ErrInvalidRequest is returned for malformed pane or effective config requests
	ErrInvalidRequest = goerr.New("invalid request")
)

// Context keys for error values
const (
	PanelIDKey  = "panel_id"
	PluginIDKey = "plugin_id"
	IssuesKey   = "issues"
	TargetKey   = "target"
)
