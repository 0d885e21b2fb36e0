package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// PluginID identifies a panel plugin (e.g. "timeseries")
type PluginID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the PluginID is valid
func (p PluginID) Validate() error {
	if p == "" {
		return goerr.New("plugin ID cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("plugin ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of PluginID
func (p PluginID) String() string {
	return string(p)
}

// PanelID identifies a saved panel configuration
type PanelID string

// NewPanelID returns a new time-ordered panel ID
func NewPanelID() PanelID {
	return PanelID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the PanelID is a valid UUID
func (p PanelID) Validate() error {
	if p == "" {
		return goerr.New("panel ID cannot be empty")
	}
	if _, err := uuid.Parse(string(p)); err != nil {
		return goerr.Wrap(err, "panel ID must be a UUID", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of PanelID
func (p PanelID) String() string {
	return string(p)
}
